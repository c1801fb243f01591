package errors

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "simple error",
			err:  errors.New("file not found"),
			want: "Error: file not found",
		},
		{
			name: "wrapped error",
			err:  errors.Join(errors.New("outer"), errors.New("inner")),
			want: "Error: outer\ninner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("row %d: bad value %q", 12, "abc")
	want := `Error: row 12: bad value "abc"`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}
