package contract

import (
	"fmt"
	"regexp"
	"strconv"
)

// CheckError is an aborted action: a contract condition did not hold.
// Code is zero when the contract reported a message instead.
type CheckError struct {
	Code    uint64
	Message string
}

func (e *CheckError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("assertion failure with error code: %d", e.Code)
	}
	return "assertion failure with message: " + e.Message
}

// Check returns a *CheckError carrying msg when cond is false.
func Check(cond bool, msg string) error {
	if cond {
		return nil
	}
	return &CheckError{Message: msg}
}

func CheckCode(cond bool, code uint64) error {
	if cond {
		return nil
	}
	return &CheckError{Code: code}
}

var (
	checkCodePattern    = regexp.MustCompile(`assertion failure with error code: (\d+)(?:\r?\n|$)`)
	checkMessagePattern = regexp.MustCompile(`assertion failure with message: (.+?)\r?(?:\n|$)`)
)

// ParseCheckError finds a check failure in host output, such as a trap
// message or a node's error response. The numeric form wins when both
// appear.
func ParseCheckError(output string) (*CheckError, bool) {
	if m := checkCodePattern.FindStringSubmatch(output); m != nil {
		code, err := strconv.ParseUint(m[1], 10, 64)
		if err == nil {
			return &CheckError{Code: code}, true
		}
	}
	if m := checkMessagePattern.FindStringSubmatch(output); m != nil {
		return &CheckError{Message: m[1]}, true
	}
	return nil, false
}
