package solver_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
	"github.com/ddsimoes/optaplanner/pkg/solver"
)

// countingSolver finishes quickly and counts how many solves ran.
type countingSolver struct {
	solver.TerminationFlag
	solves *int64
}

func (s *countingSolver) Solve(ctx context.Context, problem string) (string, error) {
	atomic.AddInt64(s.solves, 1)
	return problem + "-solved", nil
}

var _ = Describe("Manager", func() {
	var m *solver.Manager[string, string]

	AfterEach(func() {
		if m != nil {
			m.Close()
			m = nil
		}
	})

	Describe("Submission", func() {
		It("should reject a duplicate in-flight problem id", func() {
			sv := newBlockingSolver()
			m = solver.NewManager[string, string](fixedFactory(sv), 1, nil)

			_, err := m.Solve("dup", echoFinder)
			Expect(err).NotTo(HaveOccurred())
			Eventually(sv.started, 1*time.Second).Should(BeClosed())

			_, err = m.Solve("dup", echoFinder)
			Expect(err).To(HaveOccurred())
			Expect(srverrors.IsDuplicateJobError(err)).To(BeTrue())

			close(sv.release)
		})

		It("should accept a resubmission once the first job terminated", func() {
			var solves int64
			factory := solver.FactoryFunc[string](func() solver.Solver[string] {
				return &countingSolver{solves: &solves}
			})
			m = solver.NewManager[string, string](factory, 1, nil)

			job, err := m.Solve("again", echoFinder)
			Expect(err).NotTo(HaveOccurred())
			_, err = job.FinalSolution(context.Background())
			Expect(err).NotTo(HaveOccurred())

			job, err = m.Solve("again", echoFinder)
			Expect(err).NotTo(HaveOccurred())
			_, err = job.FinalSolution(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(atomic.LoadInt64(&solves)).To(Equal(int64(2)))
		})

		It("should refuse submissions after Close", func() {
			m = solver.NewManager[string, string](fixedFactory(newBlockingSolver()), 1, nil)
			m.Close()
			_, err := m.Solve("late", echoFinder)
			Expect(err).To(MatchError(solver.ErrManagerClosed))
			m = nil
		})
	})

	Describe("Status", func() {
		It("should report terminated for unknown ids", func() {
			m = solver.NewManager[string, string](fixedFactory(newBlockingSolver()), 1, nil)
			Expect(m.Status("nope")).To(Equal(solver.StatusTerminated))
		})

		It("should report terminated once a job deregistered", func() {
			var solves int64
			factory := solver.FactoryFunc[string](func() solver.Solver[string] {
				return &countingSolver{solves: &solves}
			})
			m = solver.NewManager[string, string](factory, 1, nil)

			job, err := m.Solve("done", echoFinder)
			Expect(err).NotTo(HaveOccurred())
			_, err = job.FinalSolution(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Status("done")).To(Equal(solver.StatusTerminated))
			_, inFlight := m.Job("done")
			Expect(inFlight).To(BeFalse())
		})
	})

	Describe("TerminateEarly", func() {
		It("should return not found for unknown ids", func() {
			m = solver.NewManager[string, string](fixedFactory(newBlockingSolver()), 1, nil)
			err := m.TerminateEarly(context.Background(), "ghost")
			Expect(srverrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Describe("Close", func() {
		It("should terminate in-flight jobs and wait for their cleanup", func() {
			sv := newBlockingSolver()
			m = solver.NewManager[string, string](fixedFactory(sv), 1, nil)

			job, err := m.Solve("open", echoFinder)
			Expect(err).NotTo(HaveOccurred())
			Eventually(sv.started, 1*time.Second).Should(BeClosed())

			m.Close()
			m = nil

			Expect(job.Status()).To(Equal(solver.StatusTerminated))
			s, err := job.FinalSolution(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal("problem-open-partial"))
		})
	})

	Describe("Stress", func() {
		It("should release each completion signal exactly once under concurrent load", func() {
			var solves int64
			factory := solver.FactoryFunc[string](func() solver.Solver[string] {
				return &countingSolver{solves: &solves}
			})
			m = solver.NewManager[string, string](factory, 4, nil)

			const jobs = 50
			consumed := make([]int64, jobs)
			handles := make([]*solver.Job[string, string], jobs)

			for i := range jobs {
				idx := i
				job, err := m.SolveAndListen(fmt.Sprintf("stress-%d", i), echoFinder, func(string) {
					atomic.AddInt64(&consumed[idx], 1)
				})
				Expect(err).NotTo(HaveOccurred())
				handles[i] = job
			}

			// Terminate every other job from competing goroutines while
			// everyone waits on the results.
			var wg sync.WaitGroup
			for i, job := range handles {
				if i%2 == 0 {
					wg.Add(1)
					go func(j *solver.Job[string, string]) {
						defer wg.Done()
						defer GinkgoRecover()
						Expect(j.TerminateEarly(context.Background())).To(Succeed())
					}(job)
				}
				wg.Add(1)
				go func(j *solver.Job[string, string]) {
					defer wg.Done()
					_, _ = j.FinalSolution(context.Background())
				}(job)
			}
			wg.Wait()

			for i, job := range handles {
				Expect(job.Status()).To(Equal(solver.StatusTerminated))
				Expect(atomic.LoadInt64(&consumed[i])).To(BeNumerically("<=", 1))
			}
		})
	})
})
