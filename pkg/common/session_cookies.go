package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wanderio/trek-finder/pkg/types"
)

func generateSessionId() int {
	return int(time.Now().UnixNano())
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, session_id int) {
	http.SetCookie(w, &http.Cookie{
		Name:     "sid",
		Value:    fmt.Sprintf("%d", session_id),
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteNoneMode,
		HttpOnly: true,
		MaxAge:   2592000000,
		Path:     "/",
	})
}

func HandleSessionCookie(tracking types.Tracking, w http.ResponseWriter, r *http.Request) int {
	session_id := generateSessionId()
	c, err := r.Cookie("sid")
	if err != nil {
		if tracking != nil {
			go tracking.TrackSession(session_id, r)
		}
		setSessionCookie(w, r, session_id)

	} else {
		parsed, err := strconv.Atoi(c.Value)
		if err != nil {
			// corrupt cookie, keep the freshly minted id
			setSessionCookie(w, r, session_id)
		} else {
			session_id = parsed
		}
	}
	return session_id
}
