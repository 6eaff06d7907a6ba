package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"
)

// Render generates a PNG screenshot of the document at its viewport size.
func Render(ctx context.Context, doc *Document) ([]byte, error) {
	page := doc.HTML()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, page)
	}))
	defer ts.Close()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	ctx, cancel = chromedp.NewContext(allocCtx)
	defer cancel()

	width, height := doc.Viewport()
	var buf []byte
	if err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(ts.URL),
		chromedp.WaitReady("body"),
		chromedp.CaptureScreenshot(&buf),
	); err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}

// DevRender serves the generator's document on addr until ctx is done.
func DevRender(ctx context.Context, gen *Generator, addr string, logger *log.Logger) error {
	srv := &http.Server{Addr: addr, Handler: DevHandler(gen, logger)}

	errs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()
	logger.Info("dev server running", "url", "http://localhost"+addr+"/")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	return srv.Shutdown(context.Background())
}

// DevHandler serves the document and lets a client drive its charts:
//
//	GET  /                              the page
//	POST /charts/{index}/hover/{id}     Chart.TriggerHover
//	POST /charts/{index}/out/{id}       Chart.TriggerOut
//	POST /events/{type}/{element}       pointer event on an element by id
//	POST /resize/{width}                window resize
//
// Requests are handled one at a time, like events on a page.
func DevHandler(gen *Generator, logger *log.Logger) http.Handler {
	var mu sync.Mutex
	doc := gen.Document()

	chart := func(w http.ResponseWriter, r *http.Request) *Chart {
		i, err := strconv.Atoi(r.PathValue("index"))
		instances := gen.Instances()
		if err != nil || i < 0 || i >= len(instances) {
			http.NotFound(w, r)
			return nil
		}
		return instances[i]
	}
	done := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := doc.Render(w); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
	mux.HandleFunc("POST /charts/{index}/hover/{id}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		if c := chart(w, r); c != nil {
			c.TriggerHover(r.PathValue("id"))
			done(w, r)
		}
	})
	mux.HandleFunc("POST /charts/{index}/out/{id}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		if c := chart(w, r); c != nil {
			c.TriggerOut(r.PathValue("id"))
			done(w, r)
		}
	})
	mux.HandleFunc("POST /events/{type}/{element}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		typ := EventType(r.PathValue("type"))
		switch typ {
		case EventMouseOver, EventMouseOut, EventClick:
		default:
			http.Error(w, "unknown event type", http.StatusBadRequest)
			return
		}
		if !doc.Dispatch(doc.ElementByID(r.PathValue("element")), typ) {
			http.NotFound(w, r)
			return
		}
		done(w, r)
	})
	mux.HandleFunc("POST /resize/{width}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		width, err := strconv.ParseFloat(r.PathValue("width"), 64)
		if err != nil || width <= 0 {
			http.Error(w, "invalid width", http.StatusBadRequest)
			return
		}
		_, height := doc.Viewport()
		doc.Resize(width, height)
		done(w, r)
	})
	return mux
}
