package services_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ddsimoes/optaplanner/internal/services"
	"github.com/ddsimoes/optaplanner/internal/store"
	"github.com/ddsimoes/optaplanner/internal/store/migrations"
	"github.com/ddsimoes/optaplanner/internal/util"
	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
	"github.com/ddsimoes/optaplanner/pkg/nqueens"
	"github.com/ddsimoes/optaplanner/pkg/notify"
	"github.com/ddsimoes/optaplanner/pkg/solver"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

var _ = Describe("SolverService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		st  *store.Store
		svc *services.SolverService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())
		st = store.NewStore(db)

		svc = services.NewSolverService(nqueens.NewJSONFactory(), 2, st, nil)
	})

	AfterEach(func() {
		if svc != nil {
			svc.Close()
		}
		if db != nil {
			db.Close()
		}
	})

	Describe("Submit", func() {
		It("should solve a submitted problem end to end", func() {
			id, err := svc.Submit(ctx, json.RawMessage(`{"n": 8}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(id).NotTo(BeEmpty())

			solution, err := svc.Solution(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			var parsed nqueens.Solution
			Expect(json.Unmarshal(solution, &parsed)).To(Succeed())
			Expect(parsed.Feasible()).To(BeTrue())

			status, err := svc.Status(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(solver.StatusTerminated))

			// The consumer persisted the solution.
			Eventually(func() error {
				_, err := st.Solutions().Get(ctx, id)
				return err
			}, 2*time.Second).Should(Succeed())
		})

		It("should surface a solve failure to solution waiters", func() {
			id, err := svc.Submit(ctx, json.RawMessage(`{"n": -1}`))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Solution(ctx, id)
			Expect(err).To(HaveOccurred())
			Expect(srverrors.IsExecutionError(err)).To(BeTrue())

			// The failure outcome is persisted, so it stays observable
			// after the job handle is gone.
			sol, err := st.Solutions().Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Error).To(ContainSubstring("board size must be positive"))

			_, err = svc.Solution(ctx, id)
			Expect(srverrors.IsExecutionError(err)).To(BeTrue())
		})
	})

	Describe("Status", func() {
		It("should return not found for an unknown id", func() {
			_, err := svc.Status(ctx, "no-such-job")
			Expect(srverrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Describe("Terminate", func() {
		It("should stop a running job and leave a partial solution", func() {
			// N=3 has no feasible placement, so the job runs until stopped.
			id, err := svc.Submit(ctx, json.RawMessage(`{"n": 3}`))
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() (solver.Status, error) {
				return svc.Status(ctx, id)
			}, 2*time.Second).Should(Equal(solver.StatusActive))

			Expect(svc.Terminate(ctx, id)).To(Succeed())

			status, err := svc.Status(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(solver.StatusTerminated))

			solution, err := svc.Solution(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			var parsed nqueens.Solution
			Expect(json.Unmarshal(solution, &parsed)).To(Succeed())
			Expect(parsed.Feasible()).To(BeFalse())
		})

		It("should tolerate terminating an already-terminated job", func() {
			id, err := svc.Submit(ctx, json.RawMessage(`{"n": 4}`))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Solution(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Terminate(ctx, id)).To(Succeed())
		})

		It("should return not found for an unknown id", func() {
			err := svc.Terminate(ctx, "no-such-job")
			Expect(srverrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("should page through jobs with live status overlaid", func() {
			var ids []string
			for range 3 {
				id, err := svc.Submit(ctx, json.RawMessage(`{"n": 6}`))
				Expect(err).NotTo(HaveOccurred())
				ids = append(ids, id)
			}
			for _, id := range ids {
				_, err := svc.Solution(ctx, id)
				Expect(err).NotTo(HaveOccurred())
			}

			result, err := svc.List(ctx, services.ListParams{Solved: util.Ptr(true), Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(3))
			Expect(result.Jobs).To(HaveLen(2))
			for _, rec := range result.Jobs {
				Expect(rec.Status).To(Equal("terminated"))
				Expect(rec.SolvedAt).NotTo(BeNil())
			}
		})
	})

	Describe("Webhook notification", func() {
		It("should post the terminal outcome once per job", func() {
			var events int64
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var event notify.JobEvent
				Expect(json.NewDecoder(r.Body).Decode(&event)).To(Succeed())
				Expect(event.Status).To(Equal("terminated"))
				atomic.AddInt64(&events, 1)
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			notifier := notify.NewNotifier(srv.URL, 3)
			withHook := services.NewSolverService(nqueens.NewJSONFactory(), 1, st, notifier)
			defer withHook.Close()

			id, err := withHook.Submit(ctx, json.RawMessage(`{"n": 5}`))
			Expect(err).NotTo(HaveOccurred())
			_, err = withHook.Solution(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() int64 {
				return atomic.LoadInt64(&events)
			}, 2*time.Second).Should(Equal(int64(1)))
			Consistently(func() int64 {
				return atomic.LoadInt64(&events)
			}, 300*time.Millisecond).Should(Equal(int64(1)))
		})
	})
})
