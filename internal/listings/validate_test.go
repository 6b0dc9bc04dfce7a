package listings

import (
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Title:       "Cozy Cabin",
		Description: "A quiet cabin in the woods",
		Image:       "https://example.com/cabin.jpg",
		Price:       "120",
		Location:    "Asheville",
		Country:     "USA",
	}
}

func TestValidateOK(t *testing.T) {
	form, errs := Validate(validInput())
	if len(errs) != 0 {
		t.Fatalf("Validate() unexpected errors: %v", errs)
	}
	if form.Title != "Cozy Cabin" || form.Price != 120 || form.Country != "USA" {
		t.Errorf("Validate() form = %+v", form)
	}
}

func TestValidateImageOptional(t *testing.T) {
	in := validInput()
	in.Image = ""
	if _, errs := Validate(in); len(errs) != 0 {
		t.Errorf("Validate() should accept empty image, got %v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		want   string
	}{
		{"missing title", func(in *Input) { in.Title = "" }, "title is required"},
		{"missing description", func(in *Input) { in.Description = " " }, "description is required"},
		{"missing location", func(in *Input) { in.Location = "" }, "location is required"},
		{"missing country", func(in *Input) { in.Country = "" }, "country is required"},
		{"missing price", func(in *Input) { in.Price = "" }, "price is required"},
		{"non-numeric price", func(in *Input) { in.Price = "cheap" }, "price must be a number"},
		{"NaN price", func(in *Input) { in.Price = "NaN" }, "price must be a number"},
		{"positive infinity price", func(in *Input) { in.Price = "+Inf" }, "price must be a number"},
		{"negative infinity price", func(in *Input) { in.Price = "-Inf" }, "price must be a number"},
		{"negative price", func(in *Input) { in.Price = "-5" }, "price must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, errs := Validate(in)
			if len(errs) != 1 {
				t.Fatalf("Validate() errors = %v, want exactly one", errs)
			}
			if errs[0].Message != tt.want {
				t.Errorf("Validate() message = %q, want %q", errs[0].Message, tt.want)
			}
		})
	}
}

func TestValidateAggregatesAllErrors(t *testing.T) {
	_, errs := Validate(Input{Price: "-1"})
	if len(errs) != 5 {
		t.Fatalf("Validate() reported %d errors, want 5: %v", len(errs), errs)
	}

	joined := JoinErrors(errs)
	if !strings.Contains(joined, ",") {
		t.Errorf("JoinErrors() = %q, want comma-joined messages", joined)
	}
	for _, want := range []string{"title is required", "country is required", "price must be non-negative"} {
		if !strings.Contains(joined, want) {
			t.Errorf("JoinErrors() = %q, missing %q", joined, want)
		}
	}
}
