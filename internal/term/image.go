package term

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

const kittyChunkSize = 4096

// KittyImgOpts sizes an image in terminal cells.
type KittyImgOpts struct {
	DstCols uint32
	DstRows uint32
}

// KittyWriteImage transmits img as PNG using the kitty graphics protocol.
func KittyWriteImage(w io.Writer, img image.Image, opts KittyImgOpts) error {
	payload, err := encodePNG(img)
	if err != nil {
		return err
	}

	for first := true; len(payload) > 0; first = false {
		n := min(kittyChunkSize, len(payload))
		chunk := payload[:n]
		payload = payload[n:]

		more := 0
		if len(payload) > 0 {
			more = 1
		}

		var ctrl string
		if first {
			ctrl = fmt.Sprintf("a=T,f=100,q=2,c=%d,r=%d,m=%d", opts.DstCols, opts.DstRows, more)
		} else {
			ctrl = fmt.Sprintf("m=%d", more)
		}
		if _, err := fmt.Fprintf(w, "\x1b_G%s;%s\x1b\\", ctrl, chunk); err != nil {
			return err
		}
	}
	return nil
}

// ItermImgOpts holds the iTerm inline image arguments. Width and Height are
// in cells unless suffixed with px or %.
type ItermImgOpts struct {
	Width             string
	Height            string
	IgnoreAspectRatio bool
}

// ItermWriteImageWithOptions writes img with the iTerm2 inline image protocol.
func ItermWriteImageWithOptions(w io.Writer, img image.Image, opts ItermImgOpts) error {
	payload, err := encodePNG(img)
	if err != nil {
		return err
	}

	args := []string{"inline=1", fmt.Sprintf("size=%d", len(payload)*3/4)}
	if opts.Width != "" {
		args = append(args, "width="+opts.Width)
	}
	if opts.Height != "" {
		args = append(args, "height="+opts.Height)
	}
	if opts.IgnoreAspectRatio {
		args = append(args, "preserveAspectRatio=0")
	}

	_, err = fmt.Fprintf(w, "\x1b]1337;File=%s:%s\a", strings.Join(args, ";"), payload)
	return err
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
