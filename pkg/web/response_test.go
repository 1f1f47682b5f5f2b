package web

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestGetErrorMsg(t *testing.T) {
	type request struct {
		Username string `validate:"required,alphanum"`
		Password string `validate:"min=6"`
		Email    string `validate:"omitempty,email"`
	}

	testCases := []struct {
		name    string
		request request
		want    string
	}{
		{
			name:    "Required",
			request: request{Password: "secret1"},
			want:    "Username field is required",
		},
		{
			name:    "Alphanum",
			request: request{Username: "a-b", Password: "secret1"},
			want:    "Username accepts only alphanumeric characters",
		},
		{
			name:    "Min",
			request: request{Username: "student1", Password: "abc"},
			want:    "Password must be at least 6 characters long",
		},
		{
			name:    "Email",
			request: request{Username: "student1", Password: "secret1", Email: "nope"},
			want:    "Email must be a valid email",
		},
	}

	v := validator.New()

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.request)

			var ve validator.ValidationErrors
			require.True(t, errors.As(err, &ve))
			require.Equal(t, tc.want, GetErrorMsg(ve))
		})
	}
}

func TestGetErrorMsgRequiredWithout(t *testing.T) {
	type request struct {
		Amount  string `validate:"required_without=FeeType,omitempty,numeric"`
		FeeType string
	}

	v := validator.New()

	var ve validator.ValidationErrors
	require.True(t, errors.As(v.Struct(request{}), &ve))
	require.Equal(t, "Amount field is required without FeeType", GetErrorMsg(ve))

	require.NoError(t, v.Struct(request{FeeType: "tuition"}))

	require.True(t, errors.As(v.Struct(request{Amount: "ten"}), &ve))
	require.Equal(t, "Amount is invalid", GetErrorMsg(ve))
}

func TestError(t *testing.T) {
	got := Error(errors.New("boom"))
	require.Equal(t, Response{Error: "boom"}, got)
}

func TestBindError(t *testing.T) {
	type request struct {
		Username string `validate:"required"`
	}

	err := validator.New().Struct(request{})
	require.Equal(t, Response{Error: "Username field is required"}, BindError(err))

	raw := errors.New("unexpected EOF")
	require.Equal(t, Response{Error: "unexpected EOF"}, BindError(raw))
}
