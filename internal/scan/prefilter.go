package scan

import (
	"errors"
	"fmt"

	"numberplater/internal/plate"
)

// ErrNoHomoglyph reports a word none of whose letters look like a digit.
var ErrNoHomoglyph = errors.New("no letter resembles a digit")

// Prefilter parses text as a Word and, when strict, also rejects words
// that no rule could ever render. Rejections wrap plate.ErrWordTooLong,
// plate.ErrInvalidCharacter or ErrNoHomoglyph.
func Prefilter(text string, strict bool) (plate.Word, error) {
	w, err := plate.ParseWord(text)
	if err != nil {
		return "", err
	}
	if !strict {
		return w, nil
	}
	for i := 0; i < len(w); i++ {
		if plate.HasHomoglyph(w[i]) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoHomoglyph, w)
}
