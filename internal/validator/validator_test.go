package validator

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/armhub-seatdesk/internal/failure"
)

type bookingForm struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Phone    string `json:"phone" validate:"notblank,max=32"`
	Room     string `json:"room" validate:"room"`
	Duration string `json:"duration" validate:"duration"`
}

func TestValidateStruct(t *testing.T) {
	valid := bookingForm{Name: "Ali Valiyev", Phone: "+998901234567", Room: "reading", Duration: "2 hours"}

	tests := []struct {
		name    string
		mutate  func(f *bookingForm)
		wantMsg string
	}{
		{name: "valid", mutate: func(*bookingForm) {}},
		{name: "blank name", mutate: func(f *bookingForm) { f.Name = "   " }, wantMsg: "name is required"},
		{name: "free text phone", mutate: func(f *bookingForm) { f.Phone = "ext. 204" }},
		{name: "short phone", mutate: func(f *bookingForm) { f.Phone = "1234" }},
		{name: "blank phone", mutate: func(f *bookingForm) { f.Phone = " " }, wantMsg: "phone is required"},
		{name: "unknown room", mutate: func(f *bookingForm) { f.Room = "lobby" }, wantMsg: "room must be one of reading, electronic"},
		{name: "unknown duration", mutate: func(f *bookingForm) { f.Duration = "5 hours" }, wantMsg: "duration must be one of 1 hour, 2 hours, 3 hours, full day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := ValidateStruct(&f)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidate_DecodeError(t *testing.T) {
	var f bookingForm
	err := Validate(strings.NewReader("{not json"), &f)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("a@b.uz", "email"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(ValidateVar("nope", "email")))
}
