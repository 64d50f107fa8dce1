package homework

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pawsitive/mathcat/internal/llm"
	"github.com/pawsitive/mathcat/internal/quota"
)

// ErrEmptyRequest means neither a picture nor a description was given.
var ErrEmptyRequest = errors.New("homework request has no image or text")

// Kind groups failures by what the student should do next.
type Kind string

const (
	KindBadRequest  Kind = "bad_request"
	KindBadImage    Kind = "bad_image"
	KindUnavailable Kind = "unavailable"
	KindRateLimited Kind = "rate_limited"
	KindDailyLimit  Kind = "daily_limit"
	KindInternal    Kind = "internal"
)

// Friendly messages shown to the student.
const (
	MsgEmpty       = "Please provide an image or text description of the problem"
	MsgImageFormat = "Could not process the image. Please try a different image or take a new photo."
	MsgImageBytes  = "The image couldn't be processed. Please try taking a new photo or uploading a different image."
	MsgImageShort  = "The image appears to be corrupted. Please try again with a different photo."
	MsgUnreadable  = "Meow! 😿 I couldn't read that image clearly. Try taking a new photo with better lighting, or type out the problem instead!"
	MsgUnavailable = "Meow! 😿 The Helper Cat is taking a catnap right now. Ask a grown-up to let the app's owner know I need some kibble!"
	MsgRateLimited = "Whoa, slow down! 🐱 This cat needs a moment to catch up. Try again in a few seconds!"
	MsgDailyLimit  = "That's a lot of homework for one day! 🐱 The Helper Cat is all out of energy. Come back tomorrow, or try the practice problems!"
	MsgGeneric     = "Meow! 😿 Something went wrong. Try again or describe your problem differently!"
	MsgEmptyAnswer = "I had trouble analyzing that. Could you try again? 🐱"
)

// Error is a homework failure with the status and message to show.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps any error from Analyze to an *Error. Local validation
// errors keep their specific message; provider errors are bucketed by
// type first and by message text second.
func Classify(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, ErrEmptyRequest):
		return &Error{KindBadRequest, http.StatusBadRequest, MsgEmpty, err}
	case errors.Is(err, ErrImageFormat):
		return &Error{KindBadImage, http.StatusBadRequest, MsgImageFormat, err}
	case errors.Is(err, ErrImageEncoding):
		return &Error{KindBadImage, http.StatusBadRequest, MsgImageBytes, err}
	case errors.Is(err, ErrImageTooSmall):
		return &Error{KindBadImage, http.StatusBadRequest, MsgImageShort, err}
	case errors.Is(err, quota.ErrQuotaExceeded):
		return &Error{KindDailyLimit, http.StatusTooManyRequests, MsgDailyLimit, err}
	}

	msg := strings.ToLower(err.Error())

	var rl *llm.ErrRateLimit
	switch {
	case containsAny(msg, "credit", "billing", "balance"):
		return &Error{KindUnavailable, http.StatusServiceUnavailable, MsgUnavailable, err}
	case errors.As(err, &rl) || containsAny(msg, "rate", "too many"):
		return &Error{KindRateLimited, http.StatusTooManyRequests, MsgRateLimited, err}
	case containsAny(msg, "did not match the expected pattern", "could not process image", "invalid base64"):
		return &Error{KindBadImage, http.StatusBadRequest, MsgUnreadable, err}
	}
	return &Error{KindInternal, http.StatusInternalServerError, MsgGeneric, err}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
