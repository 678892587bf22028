package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ddsimoes/optaplanner/pkg/notify"
)

func TestNotify(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notify Suite")
}

var _ = Describe("Notifier", func() {
	var (
		ctx      context.Context
		requests int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		atomic.StoreInt64(&requests, 0)
	})

	It("should deliver the event on first success", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&requests, 1)
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n := notify.NewNotifier(srv.URL, 3)
		err := n.Notify(ctx, notify.JobEvent{ProblemID: "p-1", Status: "terminated"})
		Expect(err).NotTo(HaveOccurred())
		Expect(atomic.LoadInt64(&requests)).To(Equal(int64(1)))
	})

	It("should retry transient server errors", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt64(&requests, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n := notify.NewNotifier(srv.URL, 5)
		err := n.Notify(ctx, notify.JobEvent{ProblemID: "p-2", Status: "terminated"})
		Expect(err).NotTo(HaveOccurred())
		Expect(atomic.LoadInt64(&requests)).To(Equal(int64(3)))
	})

	It("should give up after the configured number of tries", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&requests, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		n := notify.NewNotifier(srv.URL, 2)
		err := n.Notify(ctx, notify.JobEvent{ProblemID: "p-3", Status: "terminated"})
		Expect(err).To(HaveOccurred())
		Expect(atomic.LoadInt64(&requests)).To(Equal(int64(2)))
	})

	It("should not retry client errors", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&requests, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		n := notify.NewNotifier(srv.URL, 5)
		err := n.Notify(ctx, notify.JobEvent{ProblemID: "p-4", Status: "terminated"})
		Expect(err).To(HaveOccurred())
		Expect(atomic.LoadInt64(&requests)).To(Equal(int64(1)))
	})
})
