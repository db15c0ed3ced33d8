package usecase

import (
	"context"
	"log"
	"sync"

	emaildomain "internmail-backend/internal/email/domain"
	internshipdomain "internmail-backend/internal/internship/domain"
	internshipusecase "internmail-backend/internal/internship/usecase"
	"internmail-backend/pkg/ai"
)

// fallbackWarning tells the caller a deterministic fallback stood in for
// the model. Degradation, not silent data loss.
const fallbackWarning = "AI service is currently at capacity. This is a fallback response."

// ClassifyEmail runs the classification workflow for one email:
// classify category/sentiment/confidence, merge the verdict into the
// snapshot, and for internship mail run the structured extraction. The
// workflow always produces a usable result: unparseable model output falls
// back to the default verdict, and a retriable AI failure degrades with a
// warning instead of erroring.
func (u *emailUsecase) ClassifyEmail(ctx context.Context, userID, emailID string) (*ClassificationResult, error) {
	snapshot, err := u.emailRepo.GetByID(userID, emailID)
	if err != nil {
		return nil, err
	}

	content, err := u.bodyText(ctx, userID, snapshot)
	if err != nil {
		return nil, err
	}

	result := emaildomain.DefaultAIResult()
	warning := ""

	aiCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	raw, err := u.completer.Complete(aiCtx, classificationPrompt(content))
	cancel()
	if err != nil {
		if !ai.IsRetriable(err) {
			return nil, err
		}
		log.Printf("[CLASSIFY] AI unavailable for %s, using fallback verdict: %v", emailID, err)
		warning = fallbackWarning
	} else {
		var parsed struct {
			Category   string `json:"category"`
			Sentiment  string `json:"sentiment"`
			Confidence string `json:"confidence"`
		}
		if err := ai.DecodeObject(raw, &parsed); err != nil {
			// Malformed output resolves to the default verdict, never to a
			// failed classification
			log.Printf("[CLASSIFY] Unparseable AI response for %s: %v", emailID, err)
		} else {
			if emaildomain.ValidCategory(parsed.Category) {
				result.Category = parsed.Category
			}
			if emaildomain.ValidSentiment(parsed.Sentiment) {
				result.Sentiment = parsed.Sentiment
			}
			if emaildomain.ValidConfidence(parsed.Confidence) {
				result.Confidence = parsed.Confidence
			}
		}
	}

	if err := u.emailRepo.SaveAIResults(userID, emailID, result); err != nil {
		return nil, err
	}
	if err := u.stateRepo.IncrementProcessed(userID); err != nil {
		log.Printf("[CLASSIFY] Failed to bump processed counter: %v", err)
	}

	out := &ClassificationResult{
		Category:     result.Category,
		Sentiment:    result.Sentiment,
		Confidence:   result.Confidence,
		IsInternship: result.Category == emaildomain.CategoryInternship,
		Warning:      warning,
	}

	if out.IsInternship {
		record, extractWarning := u.extractInternship(ctx, userID, emailID, content)
		if record != nil {
			out.Internship = record
			if err := u.stateRepo.IncrementInternshipsFound(userID); err != nil {
				log.Printf("[CLASSIFY] Failed to bump internship counter: %v", err)
			}
		}
		if out.Warning == "" {
			out.Warning = extractWarning
		}
	}

	return out, nil
}

// extractInternship runs the structured-extraction prompt and persists the
// resulting tracker record. Extraction failures of any kind skip record
// creation without failing the overall classification; a retriable AI
// failure additionally reports the degradation.
func (u *emailUsecase) extractInternship(ctx context.Context, userID, emailID, content string) (*internshipdomain.InternshipRecord, string) {
	aiCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	raw, err := u.completer.Complete(aiCtx, extractionPrompt(content))
	cancel()
	if err != nil {
		log.Printf("[EXTRACT] AI call failed for %s: %v", emailID, err)
		if ai.IsRetriable(err) {
			return nil, fallbackWarning
		}
		return nil, ""
	}

	var parsed struct {
		IsInternship bool                          `json:"isInternship"`
		Internship   *internshipusecase.Extraction `json:"internship"`
	}
	if err := ai.DecodeObject(raw, &parsed); err != nil {
		log.Printf("[EXTRACT] Unparseable AI response for %s: %v", emailID, err)
		return nil, ""
	}
	if !parsed.IsInternship || parsed.Internship == nil {
		return nil, ""
	}

	record, err := u.internshipUc.RecordExtraction(userID, emailID, *parsed.Internship)
	if err != nil {
		log.Printf("[EXTRACT] Failed to persist internship for %s: %v", emailID, err)
		return nil, ""
	}

	log.Printf("[EXTRACT] Tracked internship %s (%s) from email %s", record.Company, record.Position, emailID)
	return record, ""
}

// ClassifyAll classifies every unprocessed snapshot. Items run on a bounded
// worker pool (one worker means strictly sequential processing); each item's
// failure is isolated and reported in the aggregate, and cancellation is
// honored between items, never mid-call.
func (u *emailUsecase) ClassifyAll(ctx context.Context, userID string) (*BatchClassificationResult, error) {
	// Credentials are the precondition for body fetches; check them before
	// any per-item work starts
	if _, err := u.credentialsFor(userID); err != nil {
		return nil, err
	}

	snapshots, err := u.emailRepo.GetAll(userID)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, s := range snapshots {
		if !s.Processed {
			pending = append(pending, s.ID)
		}
	}

	workers := u.config.ClassifyWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) && len(pending) > 0 {
		workers = len(pending)
	}

	jobs := make(chan string)
	var (
		mu     sync.Mutex
		result BatchClassificationResult
		wg     sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if ctx.Err() != nil {
					return
				}

				res, err := u.ClassifyEmail(ctx, userID, id)

				mu.Lock()
				if err != nil {
					log.Printf("[CLASSIFY] Failed to classify %s: %v", id, err)
					result.FailedIDs = append(result.FailedIDs, id)
				} else {
					result.Processed++
					if res.IsInternship {
						result.InternshipsFound++
					}
					if res.Warning != "" {
						result.Warnings++
					}
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range pending {
		if ctx.Err() != nil {
			break
		}
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}
