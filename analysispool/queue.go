package analysispool

import (
	"bytes"
	"context"
	"sync"

	"wcl_check/cache"
	"wcl_check/damage"
	"wcl_check/fight"
	"wcl_check/share"
	"wcl_check/sweep"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Pool runs websocket analyses one at a time, in arrival order.
type Pool struct {
	src     fight.Source
	results *cache.Storage
	workers int

	queueLock sync.Mutex
	queue     []*queueData
	queueWake chan struct{}
}

// New starts the queue worker. results caches rendered pages and may be nil.
func New(src fight.Source, results *cache.Storage, workers int) *Pool {
	p := &Pool{
		src:       src,
		results:   results,
		workers:   workers,
		queue:     make([]*queueData, 0, 16),
		queueWake: make(chan struct{}, 1),
	}
	go p.queueWorker()
	return p
}

type queueData struct {
	id      string
	reqData RequestData

	ws        *websocket.Conn
	ctx       context.Context
	ctxCancel func()

	// the rendered page, nil when the analysis failed
	chanResult chan *bytes.Buffer

	msgLock sync.Mutex
}

var (
	eventRespBufferPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 16*1024))
		},
	}

	eventStart = []byte(`{"event":"start"}`)
	eventError = []byte(`{"event":"error"}`)
)

func (p *Pool) enqueue(q *queueData) int {
	p.queueLock.Lock()
	defer p.queueLock.Unlock()

	if len(p.queue) == 0 {
		select {
		case p.queueWake <- struct{}{}:
		default:
		}
	}
	p.queue = append(p.queue, q)
	return len(p.queue)
}

func (p *Pool) queueWorker() {
	var q *queueData

	for {
		q = nil

		p.queueLock.Lock()
		if len(p.queue) > 0 {
			q = p.queue[0]

			if len(p.queue) > 1 {
				for i := 1; i < len(p.queue); i++ {
					go p.queue[i].Reorder(i)
					p.queue[i-1] = p.queue[i]
				}
			}
			p.queue = p.queue[:len(p.queue)-1]
		}
		p.queueLock.Unlock()
		if q == nil {
			<-p.queueWake
			continue
		}

		log.Info().Str("id", q.id).Str("report", q.reqData.Report).Int("fight", q.reqData.FightID).Int("player", q.reqData.PlayerID).Msg("start")
		q.Start()

		if q.ctx.Err() != nil {
			q.chanResult <- nil
		} else {
			buf := p.analyze(q)
			select {
			case <-q.ctx.Done():
				if buf != nil {
					bufPool.Put(buf)
				}
			case q.chanResult <- buf:
			}
		}

		log.Info().Str("id", q.id).Msg("end")
	}
}

func (p *Pool) analyze(q *queueData) *bytes.Buffer {
	r := &q.reqData

	q.Progress("report")
	a, err := fight.Analyze(q.ctx, p.src, r.Report, r.FightID, r.PlayerID, r.Status)
	if err != nil {
		share.Report(err)
		return nil
	}

	calc, err := damage.NewCalculator(a.Fight())
	if err != nil {
		share.Report(err)
		return nil
	}

	gains, err := calc.Calculate(r.Attributes)
	if err != nil {
		share.Report(err)
		return nil
	}
	share.Calculations.Inc()

	report, err := sweep.Curves(q.ctx, calc, sweep.Options{Workers: p.workers, Progress: q.Progress})
	if err != nil {
		share.Report(err)
		return nil
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	err = render(buf, q.id, a, gains, report)
	if err != nil {
		bufPool.Put(buf)
		share.Report(errors.WithStack(err))
		return nil
	}
	return buf
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (q *queueData) MessageJson(resp interface{}) error {
	buf := eventRespBufferPool.Get().(*bytes.Buffer)
	defer eventRespBufferPool.Put(buf)

	buf.Reset()

	err := jsoniter.NewEncoder(buf).Encode(&resp)
	if err != nil {
		share.Report(err)
		return err
	}

	return q.MessageBytes(buf.Bytes())
}

func (q *queueData) MessageBytes(data []byte) error {
	q.msgLock.Lock()
	defer q.msgLock.Unlock()

	return q.ws.WriteMessage(websocket.TextMessage, data)
}

func (q *queueData) event(name string, data interface{}) {
	resp := struct {
		Event string      `json:"event"`
		Data  interface{} `json:"data"`
	}{
		Event: name,
		Data:  data,
	}

	err := q.MessageJson(&resp)
	if err != nil {
		if err != websocket.ErrCloseSent {
			share.Report(err)
		}
		q.ctxCancel()
	}
}

func (q *queueData) Ready() {
	q.event("ready", q.id)
}

func (q *queueData) Reorder(order int) {
	q.event("waiting", order)
}

func (q *queueData) Start() {
	err := q.MessageBytes(eventStart)
	if err != nil {
		if err != websocket.ErrCloseSent {
			share.Report(err)
		}
		q.ctxCancel()
	}
}

func (q *queueData) Progress(s string) {
	q.event("progress", s)
}

func (q *queueData) Error() {
	err := q.MessageBytes(eventError)
	if err != nil {
		if err != websocket.ErrCloseSent {
			share.Report(err)
		}
		q.ctxCancel()
	}
}

func (q *queueData) Succ(buf *bytes.Buffer) {
	q.event("complete", buf.String())
}

func newID() string {
	return uuid.NewString()
}
