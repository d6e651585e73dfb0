package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/status"
	"github.com/vidload/vidload/style"
)

// noticePrinter writes notices as styled lines, or as JSON lines carrying every stage.
type noticePrinter struct {
	mu     sync.Mutex
	out    io.Writer
	asJson bool
}

func (p *noticePrinter) Show(n status.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.asJson {
		if err := json.NewEncoder(p.out).Encode(n); err != nil {
			log.Warnf("encode notice: %v", err)
		}
		return
	}

	if n.Stage == status.Visible {
		_, _ = fmt.Fprintln(p.out, style.NoticeLine(n))
	}
}
