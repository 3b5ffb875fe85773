package navigation

import "strconv"

// State tracks the current page and the key buffer used for counts and
// multi-key motions such as 3l or gg.
type State struct {
	Buffer      string
	Page        int
	TotalSlides int
}

// Navigate returns the state after keyPress.
func Navigate(state State, keyPress string) State {
	switch keyPress {
	case "g":
		if state.Buffer == "g" {
			return State{Page: 0, TotalSlides: state.TotalSlides}
		}
		return State{Buffer: "g", Page: state.Page, TotalSlides: state.TotalSlides}
	case "G":
		page := state.TotalSlides - 1
		if n, err := strconv.Atoi(state.Buffer); err == nil {
			page = n - 1
		}
		return State{Page: clamp(page, state.TotalSlides), TotalSlides: state.TotalSlides}
	case " ", "down", "j", "right", "l", "enter", "n", "pgdown":
		return State{
			Page:        clamp(state.Page+count(state.Buffer), state.TotalSlides),
			TotalSlides: state.TotalSlides,
		}
	case "up", "k", "left", "h", "p", "pgup", "backspace", "shift+tab":
		return State{
			Page:        clamp(state.Page-count(state.Buffer), state.TotalSlides),
			TotalSlides: state.TotalSlides,
		}
	}

	if isDigit(keyPress) {
		buffer := state.Buffer
		// a pending g is not a count
		if _, err := strconv.Atoi(buffer); err != nil {
			buffer = ""
		}
		return State{Buffer: buffer + keyPress, Page: state.Page, TotalSlides: state.TotalSlides}
	}

	return State{Page: state.Page, TotalSlides: state.TotalSlides}
}

func count(buffer string) int {
	n, err := strconv.Atoi(buffer)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clamp(page, total int) int {
	if page >= total {
		page = total - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
