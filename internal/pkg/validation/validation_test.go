package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Price    float64 `json:"price" validate:"gte=0"`
	Days     int     `json:"days" validate:"gt=0"`
}

func valid() sampleInput {
	return sampleInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Price:    29.99,
		Days:     30,
	}
}

func TestStruct(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		in := valid()
		assert.NoError(t, Struct(&in))
	})

	t.Run("missing required field", func(t *testing.T) {
		in := valid()
		in.Name = ""
		err := Struct(&in)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("malformed email", func(t *testing.T) {
		in := valid()
		in.Email = "not-an-email"
		err := Struct(&in)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("short password", func(t *testing.T) {
		in := valid()
		in.Password = "short"
		assert.Error(t, Struct(&in))
	})

	t.Run("negative price", func(t *testing.T) {
		in := valid()
		in.Price = -1
		assert.Error(t, Struct(&in))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		in := valid()
		in.Days = 0
		assert.Error(t, Struct(&in))
	})
}
