package httputil

import (
	"net/http/httptest"
	"testing"
)

func TestGetTokenFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer header", target: "/api/move", header: "Bearer abc", want: "abc"},
		{name: "raw header", target: "/api/move", header: "abc", want: "abc"},
		{name: "query param", target: "/ws/match?token=xyz", want: "xyz"},
		{name: "header wins", target: "/ws/match?token=xyz", header: "Bearer abc", want: "abc"},
		{name: "missing", target: "/api/move", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := GetTokenFromRequest(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Fatalf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
