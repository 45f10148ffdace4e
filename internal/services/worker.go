package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/talent-assessor/internal/models"
	"alfredoptarigan/talent-assessor/internal/repositories"
)

// Worker drives the submission pipeline: transcribe pending media responses,
// analyze the candidate, notify the assessment owner.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueSubmission(candidateID uuid.UUID)
}

type worker struct {
	candidateRepo  repositories.CandidateRepository
	assessmentRepo repositories.AssessmentRepository
	responseRepo   repositories.ResponseRepository
	transcriber    TranscriberService
	analyzer       AnalyzerService
	notifier       NotifierService
	jobQueue       chan uuid.UUID
	concurrency    int
	wg             sync.WaitGroup
	stopChan       chan struct{}
}

func NewWorker(
	candidateRepo repositories.CandidateRepository,
	assessmentRepo repositories.AssessmentRepository,
	responseRepo repositories.ResponseRepository,
	transcriber TranscriberService,
	analyzer AnalyzerService,
	notifier NotifierService,
	concurrency int,
) Worker {
	return &worker{
		candidateRepo:  candidateRepo,
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		transcriber:    transcriber,
		analyzer:       analyzer,
		notifier:       notifier,
		jobQueue:       make(chan uuid.UUID, 100),
		concurrency:    concurrency,
		stopChan:       make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Pick up submissions that were queued before a restart
	w.wg.Add(1)
	go w.pollSubmissions(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueSubmission implements Worker.
func (w *worker) EnqueueSubmission(candidateID uuid.UUID) {
	select {
	case w.jobQueue <- candidateID:
		log.Printf("📥 Submission %s enqueued\n", candidateID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue submission %s\n", candidateID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case candidateID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing submission %s\n", workerID, candidateID)
			if err := w.processSubmission(ctx, candidateID); err != nil {
				log.Printf("❌ Worker #%d failed to process submission %s: %v\n", workerID, candidateID, err)
			} else {
				log.Printf("✅ Worker #%d completed submission %s\n", workerID, candidateID)
			}
		}
	}
}

// processSubmission runs the full pipeline for one submitted candidate.
// Transcription failures are tolerated per item; the analysis itself is total
// and only a persistence failure aborts the job, leaving the candidate
// SUBMITTED for the poller to retry.
func (w *worker) processSubmission(ctx context.Context, candidateID uuid.UUID) error {
	candidate, err := w.candidateRepo.FindByID(candidateID)
	if err != nil {
		return err
	}

	// Claim the submission. The conditional status flip makes the claim
	// exclusive, so a candidate enqueued by both the handler and the poller is
	// only processed once.
	claimed, err := w.candidateRepo.ClaimForAnalysis(candidateID)
	if err != nil {
		return err
	}
	if !claimed {
		log.Printf("📋 Submission %s already claimed, skipping\n", candidateID)
		return nil
	}

	responses, err := w.responseRepo.FindByCandidateID(candidateID)
	if err != nil {
		return w.requeue(candidateID, err)
	}

	if failures := w.transcriber.TranscribeAll(ctx, pendingMedia(responses)); len(failures) > 0 {
		log.Printf("⚠️  %d transcription(s) failed for candidate %s, analyzing with what we have\n", len(failures), candidateID)
	}

	analysis, err := w.analyzer.Analyze(ctx, candidateID)
	if err != nil {
		return w.requeue(candidateID, err)
	}

	if err := w.candidateRepo.UpdateStatus(candidateID, models.CandidateAnalyzed); err != nil {
		return w.requeue(candidateID, err)
	}

	// Notification is best-effort: the analysis is already stored and the
	// candidate marked ANALYZED, so a notification problem never stalls the
	// pipeline.
	assessment, err := w.assessmentRepo.FindByID(candidate.AssessmentID)
	if err != nil {
		log.Printf("⚠️  Failed to load assessment for candidate %s, skipping notification: %v\n", candidateID, err)
		return nil
	}

	if result := w.notifier.NotifyCompletion(assessment, candidate, analysis); !result.Success {
		log.Printf("⚠️  Completion notification failed for candidate %s: %s\n", candidateID, result.Error)
	}

	return nil
}

// requeue reverts a claimed candidate to SUBMITTED so the poller retries it,
// then propagates the original failure.
func (w *worker) requeue(candidateID uuid.UUID, cause error) error {
	if statusErr := w.candidateRepo.UpdateStatus(candidateID, models.CandidateSubmitted); statusErr != nil {
		log.Printf("⚠️  Failed to requeue candidate %s: %v\n", candidateID, statusErr)
	}
	return cause
}

func pendingMedia(responses []models.Response) []models.Response {
	var pending []models.Response
	for _, response := range responses {
		if response.ResponseType == models.QuestionText {
			continue
		}
		if response.Transcription != nil {
			continue
		}
		pending = append(pending, response)
	}
	return pending
}

func (w *worker) pollSubmissions(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting submission poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Submission poller stopped")
			return
		case <-ticker.C:
			candidates, err := w.candidateRepo.FindSubmitted(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch submitted candidates: %v\n", err)
				continue
			}

			if len(candidates) > 0 {
				log.Printf("📋 Found %d pending submissions\n", len(candidates))
			}

			for _, candidate := range candidates {
				w.EnqueueSubmission(candidate.ID)
			}
		}
	}
}
