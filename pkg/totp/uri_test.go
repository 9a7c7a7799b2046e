package totp

import (
	"net/url"
	"strings"
	"testing"
)

// TestURI tests provisioning URI construction
func TestURI(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		label      string
		identifier string
		want       string
	}{
		{
			name:       "name with identifier",
			cfg:        Config{Secret: "ABCD1234"},
			label:      "App",
			identifier: "alice",
			want:       "otpauth://totp/App:alice?secret=ABCD1234&algorithm=sha1&digits=6&period=30",
		},
		{
			name:  "name only",
			cfg:   Config{Secret: "ABCD1234"},
			label: "App",
			want:  "otpauth://totp/App?secret=ABCD1234&algorithm=sha1&digits=6&period=30",
		},
		{
			name: "custom options",
			cfg: Config{
				Secret:    "JBSWY3DPEHPK3PXP",
				Digits:    8,
				Period:    60,
				Algorithm: AlgorithmSHA256,
			},
			label:      "App",
			identifier: "alice",
			want:       "otpauth://totp/App:alice?secret=JBSWY3DPEHPK3PXP&algorithm=sha256&digits=8&period=60",
		},
		{
			name:       "escaped label",
			cfg:        Config{Secret: "JBSWY3DPEHPK3PXP"},
			label:      "Example App",
			identifier: "alice bob",
			want:       "otpauth://totp/Example%20App:alice%20bob?secret=JBSWY3DPEHPK3PXP&algorithm=sha1&digits=6&period=30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("failed to create engine: %v", err)
			}

			got := engine.URI(tt.label, tt.identifier)
			if got != tt.want {
				t.Errorf("URI = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestURIParameterOrder tests that query parameters keep the conventional
// order for authenticator apps
func TestURIParameterOrder(t *testing.T) {
	engine, err := New(Config{Secret: "JBSWY3DPEHPK3PXP"})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	uri := engine.URI("App", "alice")
	query := uri[strings.IndexByte(uri, '?')+1:]

	var keys []string
	for _, pair := range strings.Split(query, "&") {
		keys = append(keys, strings.SplitN(pair, "=", 2)[0])
	}

	want := []string{"secret", "algorithm", "digits", "period"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d parameters, got %v", len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("parameter %d: expected %q, got %q", i, k, keys[i])
		}
	}
}

// TestURIParses tests that the produced URI survives standard URL parsing
func TestURIParses(t *testing.T) {
	engine, err := New(Config{
		Secret:    "JBSWY3DPEHPK3PXP",
		Digits:    8,
		Algorithm: AlgorithmSHA512,
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	uri := engine.URIFor("Example App", testIdentity("alice@example.com"))

	parsed, err := url.Parse(uri)
	if err != nil {
		t.Fatalf("failed to parse URI: %v", err)
	}
	if parsed.Scheme != "otpauth" || parsed.Host != "totp" {
		t.Errorf("unexpected scheme/host: %s://%s", parsed.Scheme, parsed.Host)
	}
	if got := strings.TrimPrefix(parsed.Path, "/"); got != "Example App:alice@example.com" {
		t.Errorf("unexpected label: %q", got)
	}

	q := parsed.Query()
	if q.Get("secret") != "JBSWY3DPEHPK3PXP" {
		t.Errorf("unexpected secret parameter: %q", q.Get("secret"))
	}
	if q.Get("algorithm") != "sha512" {
		t.Errorf("unexpected algorithm parameter: %q", q.Get("algorithm"))
	}
	if q.Get("digits") != "8" {
		t.Errorf("unexpected digits parameter: %q", q.Get("digits"))
	}
	if q.Get("period") != "30" {
		t.Errorf("unexpected period parameter: %q", q.Get("period"))
	}
}
