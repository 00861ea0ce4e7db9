package fill

import "crypto/rand"

// Ambiguous glyphs excluded so the credential survives manual retyping when
// a run has to be finished by hand.
const passwordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword returns the throwaway credential used to register the
// disposable portal account. The fixed prefix guarantees the character
// classes the portal's password policy asks for.
func GeneratePassword() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; keep the run
		// alive with a static credential rather than abort.
		return "Aa1@portal-run"
	}
	for i, b := range buf {
		buf[i] = passwordCharset[int(b)%len(passwordCharset)]
	}
	return "Aa1@" + string(buf)
}
