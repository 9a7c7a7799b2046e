// Package totp implements time-based one-time passwords (RFC 6238) on top
// of HMAC-based one-time passwords (RFC 4226).
//
// An Engine is built once from a shared secret and a small set of options,
// then generates short-lived numeric codes, verifies candidates against a
// ±1 period tolerance window, and builds otpauth:// provisioning URIs for
// authenticator apps.
//
// # Generating and verifying codes
//
//	engine, err := totp.New(totp.Config{
//	    Secret: "JBSWY3DPEHPK3PXP",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := engine.Now()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(engine.Format(code)) // e.g. "492039"
//
//	// Verify a code submitted by a user
//	ok, err := engine.VerifyString("492039")
//
// Now, At and AtCounter return numeric values. Rendering a code as text
// requires zero-padding to the configured digit count; use Format rather
// than formatting the integer directly.
//
// # Options
//
// Digits (default 6), Period (default 30 seconds) and Algorithm (default
// sha1; sha256 and sha512 are also supported) may be set on Config. Note
// that not all authenticator apps support sha256 and sha512.
//
// # Provisioning
//
//	secret, err := totp.GenerateSecret("alice@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// secret.Key is the 16-character base32 secret.
//	// secret.Words is the mnemonic phrase it was derived from, for
//	// display to the user.
//
//	engine, _ := totp.New(totp.Config{Secret: secret.Key})
//	uri := engine.URI("MyApp", "alice@example.com")
//	// Render uri as a QR code for the user to scan.
//
// # Verification window
//
// Verify and VerifyString accept the code for the current time, the
// previous period and the next period, evaluated at now−period and
// now+period seconds. Codes from periods further away are rejected.
// A rejected code is a normal boolean outcome, not an error.
//
// # Thread safety
//
// An Engine is immutable after construction and safe for concurrent use.
// All operations are pure and non-blocking; none accept a context because
// there is nothing to cancel.
package totp
