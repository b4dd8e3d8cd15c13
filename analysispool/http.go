package analysispool

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"wcl_check/share"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	websockEmptyClosure = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

	bufPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 16*1024))
		},
	}

	pingInterval = 5 * time.Second
	closeDelay   = time.Second
)

// Do serves one analysis over ws: ready, the request, waiting, start, progress, then complete or error.
func (p *Pool) Do(ctx context.Context, ws *websocket.Conn) {
	ctx, ctxCancel := context.WithCancel(ctx)
	defer ctxCancel()

	q := queueData{
		id:         newID(),
		ws:         ws,
		ctx:        ctx,
		ctxCancel:  ctxCancel,
		chanResult: make(chan *bytes.Buffer, 1),
	}

	q.Ready()
	if ctx.Err() != nil {
		return
	}

	err := ws.ReadJSON(&q.reqData)
	if err != nil {
		log.Debug().Err(err).Str("id", q.id).Msg("read request")
		return
	}
	go func() {
		for {
			_, r, err := ws.NextReader()
			if err != nil {
				return
			}

			_, err = io.Copy(io.Discard, r)
			if err != nil && err != io.EOF {
				return
			}
		}
	}()

	cached := bufPool.Get().(*bytes.Buffer)
	cached.Reset()
	defer bufPool.Put(cached)

	if !q.reqData.Validate() {
		q.Error()
	} else if h := q.reqData.Hash(); p.results != nil && p.results.LoadRaw(h, cached) {
		q.Succ(cached)
	} else {
		go func() {
			ticker := time.NewTicker(pingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					q.msgLock.Lock()
					err := ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(5*time.Second))
					q.msgLock.Unlock()
					if err != nil {
						if err != websocket.ErrCloseSent {
							share.Report(err)
						}
						ctxCancel()
						return
					}

				case <-ctx.Done():
					return
				}
			}
		}()

		q.Reorder(p.enqueue(&q))

		select {
		case <-ctx.Done():
		case buf := <-q.chanResult:
			if buf != nil {
				q.Succ(buf)
				if p.results != nil {
					p.results.SaveRaw(h, buf)
				}
				bufPool.Put(buf)
			} else {
				q.Error()
			}
		}
	}

	time.Sleep(closeDelay)

	q.msgLock.Lock()
	err = ws.WriteMessage(websocket.CloseMessage, websockEmptyClosure)
	q.msgLock.Unlock()
	if err != nil && err != websocket.ErrCloseSent {
		share.Report(err)
	}

	ws.Close()
}
