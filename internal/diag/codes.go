package diag

import (
	"errors"
	"fmt"

	"numberplater/internal/plate"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Input words and patterns
	InputInfo             Code = 1000
	InputWordTooLong      Code = 1001
	InputMultipleWildcard Code = 1002
	InputInvalidCharacter Code = 1003
	InputEmptyWordList    Code = 1004

	// Engine
	EngineInfo       Code = 2000
	EngineUnscorable Code = 2001

	// I/O
	IOInfo          Code = 3000
	IOLoadFileError Code = 3001
	IOCacheError    Code = 3002
	IOOutputError   Code = 3003

	// Observability
	ObsInfo    Code = 4000
	ObsTimings Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	InputInfo:             "Input information",
	InputWordTooLong:      "Word longer than a plate allows",
	InputMultipleWildcard: "Only one wildcard is supported",
	InputInvalidCharacter: "Invalid character in word",
	InputEmptyWordList:    "Word list contains no usable words",
	EngineInfo:            "Engine information",
	EngineUnscorable:      "Internal consistency fault: unscorable letter",
	IOInfo:                "I/O information",
	IOLoadFileError:       "I/O load file error",
	IOCacheError:          "Cache read/write error",
	IOOutputError:         "Output write error",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 5000:
		return fmt.Sprintf("NP%04d", ic)
	}
	return "NP0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// CodeFor classifies an engine or input error. Unrecognised errors map to
// UnknownCode.
func CodeFor(err error) Code {
	switch {
	case err == nil:
		return UnknownCode
	case errors.Is(err, plate.ErrWordTooLong):
		return InputWordTooLong
	case errors.Is(err, plate.ErrMultipleWildcards):
		return InputMultipleWildcard
	case errors.Is(err, plate.ErrInvalidCharacter):
		return InputInvalidCharacter
	case errors.Is(err, plate.ErrUnscorableLetter):
		return EngineUnscorable
	}
	return UnknownCode
}
