package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// result: created, duplicate, invalid, error
	RegistrationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_submitted_total",
			Help: "Registration submissions by outcome",
		},
		[]string{"result"},
	)

	AdminMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_mutations_total",
			Help: "Admin mutations by operation and outcome",
		},
		[]string{"operation", "result"},
	)

	AdminLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Admin login attempts by outcome",
		},
		[]string{"result"},
	)

	ChangeNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_notifications_total",
			Help: "Table change notifications received from the repository",
		},
		[]string{"table"},
	)
)
