package listings

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/wanderstay/wanderstay/internal/models"
)

// Input is the raw listing[...] form payload before validation.
type Input struct {
	Title       string
	Description string
	Image       string
	Price       string
	Location    string
	Country     string
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

func inputFromRequest(r *http.Request) Input {
	return Input{
		Title:       r.FormValue("listing[title]"),
		Description: r.FormValue("listing[description]"),
		Image:       r.FormValue("listing[image]"),
		Price:       r.FormValue("listing[price]"),
		Location:    r.FormValue("listing[location]"),
		Country:     r.FormValue("listing[country]"),
	}
}

// Validate checks the listing payload against its required shape: title,
// description, location and country must be present, price must parse as
// a non-negative number, image is optional. Every violation is reported.
func Validate(in Input) (models.ListingForm, []FieldError) {
	var errs []FieldError
	required := []struct{ field, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"location", in.Location},
		{"country", in.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, FieldError{Field: f.field, Message: f.field + " is required"})
		}
	}

	var price float64
	switch {
	case strings.TrimSpace(in.Price) == "":
		errs = append(errs, FieldError{Field: "price", Message: "price is required"})
	default:
		var err error
		price, err = strconv.ParseFloat(in.Price, 64)
		// ParseFloat accepts "NaN" and "Inf"; neither is a storable price.
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			errs = append(errs, FieldError{Field: "price", Message: "price must be a number"})
		} else if price < 0 {
			errs = append(errs, FieldError{Field: "price", Message: "price must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return models.ListingForm{}, errs
	}
	return models.ListingForm{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Price:       price,
		Location:    in.Location,
		Country:     in.Country,
	}, nil
}

// JoinErrors aggregates all field messages into the single comma-joined
// message shown to the user.
func JoinErrors(errs []FieldError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, ",")
}
