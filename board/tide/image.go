package tide

import (
	"os"

	"sxb/board"
)

// Image is an executable image produced by the WDC toolchain with the -g
// option: a 5A flag byte, a 3-byte little-endian load address, a 2-byte
// code length, one pad byte, then the code payload.
type Image struct {
	LoadAddr uint32
	Code     []byte
}

// ParseImage decodes the image framing. Anything without the leading flag
// byte is rejected outright; a malformed image has no partial meaning.
func ParseImage(data []byte) (*Image, error) {
	if len(data) < board.ImageHeaderSize {
		return nil, &board.FormatError{Reason: "image shorter than its header"}
	}
	if data[0] != board.ImageFlag {
		return nil, &board.FormatError{Reason: "image missing required compilation flag (assemble with -g)"}
	}

	addr := board.DecodeUint(data[1:4])
	length := int(board.DecodeUint(data[4:6]))
	if board.ImageHeaderSize+length > len(data) {
		return nil, &board.FormatError{Reason: "image truncated: header length exceeds file size"}
	}

	return &Image{
		LoadAddr: addr,
		Code:     data[board.ImageHeaderSize : board.ImageHeaderSize+length],
	}, nil
}

// LoadImageFile reads and parses an image from disk.
func LoadImageFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImage(data)
}

// LoadImage writes the image payload to its load address.
func (s *Session) LoadImage(img *Image) (int, error) {
	return s.WriteMemory(img.LoadAddr, img.Code)
}
