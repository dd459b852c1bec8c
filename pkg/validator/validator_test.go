package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/print3d-api/pkg/validator"
)

type item struct {
	ID string `json:"id" validate:"required"`
}

type request struct {
	Username string `json:"username" validate:"required,max=5"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
	Items    []item `json:"items" validate:"dive"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      request
		wantErr string
	}{
		{"ok", request{Username: "ana", Items: []item{{ID: "1"}}}, ""},
		{"requerido", request{}, "'username' es requerido"},
		{"máximo", request{Username: "demasiado"}, "'username' admite como máximo 5"},
		{"email", request{Username: "ana", Email: "x"}, "'email' debe ser un email válido"},
		{"oneof", request{Username: "ana", Role: "root"}, "'role' debe ser uno de: admin user"},
		{"dive", request{Username: "ana", Items: []item{{}}}, "'items[0].id' es requerido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
