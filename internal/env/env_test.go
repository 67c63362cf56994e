package env

import "testing"

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Environment
		wantErr bool
	}{
		{in: "development", want: Development},
		{in: "production", want: Production},
		{in: "staging", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			var got Environment
			err := got.UnmarshalText([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("UnmarshalText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
