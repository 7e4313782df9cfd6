package health

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingProfile marks a request that needs a biometric profile the user
// has not set up yet.
var ErrMissingProfile = errors.New("biometric profile not set up")

var validate = validator.New()

// InvalidInputError lists the fields of a rejected input.
type InvalidInputError struct {
	Fields []string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// ValidateProfile is the boundary check the handlers run before calling the
// engine. The engine functions themselves never reject input.
func ValidateProfile(p Profile) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate profile: %w", err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return &InvalidInputError{Fields: fields}
	}
	return nil
}

// ValidateDeficitChoice checks the user-chosen deficit and split.
func ValidateDeficitChoice(dailyDeficit, workoutSplitPercent float64) error {
	var fields []string
	if dailyDeficit < 0 || dailyDeficit > 1500 {
		fields = append(fields, "DailyDeficit failed range")
	}
	if workoutSplitPercent < 0 || workoutSplitPercent > 100 {
		fields = append(fields, "WorkoutSplitPercent failed range")
	}
	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}
