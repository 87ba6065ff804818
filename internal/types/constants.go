package types

import (
	"os"
	"strings"
)

// ContextUserKey is where AuthMiddleware stores the request principal.
const ContextUserKey = "user"

// AllowedOrigins feeds both the CORS config and the websocket origin check.
// Local dev origins are always allowed; production frontends come in through
// CLIENT_URL and the comma-separated ALLOWED_ORIGINS.
var AllowedOrigins = buildAllowedOrigins()

func buildAllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:4173",
	}

	if clientURL := strings.TrimSpace(os.Getenv("CLIENT_URL")); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
