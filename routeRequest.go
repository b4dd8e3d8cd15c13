package main

import (
	"net/http"
	"strings"
	"time"

	"wcl_check/share"

	"github.com/dpapathanasiou/go-recaptcha"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	websocketUpgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
)

func remoteAddr(c *gin.Context) string {
	var remoteAddr string
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		remoteAddr = strings.TrimSpace(strings.Split(v, ",")[0])
	}
	if remoteAddr == "" {
		if v := c.GetHeader("X-Real-Ip"); v != "" {
			remoteAddr = v
		}
	}
	if remoteAddr == "" {
		remoteAddr = c.Request.RemoteAddr
		if idx := strings.LastIndexByte(remoteAddr, ':'); idx >= 0 {
			remoteAddr = remoteAddr[:idx]
		}
	}
	return remoteAddr
}

// routeRequest upgrades to a websocket. With a recaptcha secret configured the first message
// must be a valid token.
func (s *server) routeRequest(c *gin.Context) {
	ws, err := websocketUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug().Err(err).Msg("upgrade")
		return
	}

	if share.Config.RecaptchaSecret != "" {
		ws.SetReadDeadline(time.Now().Add(10 * time.Second))
		_, msg, err := ws.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("recaptcha token")
			ws.Close()
			return
		}

		ok, err := recaptcha.Confirm(remoteAddr(c), string(msg))
		if err != nil || !ok {
			log.Info().Str("remote", remoteAddr(c)).Msg("recaptcha rejected")
			ws.Close()
			return
		}
		ws.SetReadDeadline(time.Time{})
	}

	s.pool.Do(c.Request.Context(), ws)
}
