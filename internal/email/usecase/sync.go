package usecase

import (
	"context"
	"log"
	"time"

	emaildomain "internmail-backend/internal/email/domain"
)

const snippetMaxLen = 100

// SyncInbox runs one ingestion cycle:
//
//  1. read the watermark (nil means first run, capped fetch without a
//     date filter)
//  2. list candidate ids from the provider
//  3. drop ids already in the store (set lookup, no second network call)
//  4. fetch metadata for each unknown id and insert a snapshot; one bad
//     message never aborts the batch
//  5. advance the watermark
//
// The returned list is the full stored collection, date descending.
func (u *emailUsecase) SyncInbox(ctx context.Context, userID string) (*SyncResult, error) {
	creds, err := u.credentialsFor(userID)
	if err != nil {
		return nil, err
	}

	state, err := u.stateRepo.Get(userID)
	if err != nil {
		return nil, err
	}

	listCtx, cancel := context.WithTimeout(ctx, mailFetchTimeout)
	refs, err := u.mailProvider.ListMessageIDs(listCtx, creds, state.LastFetchTime, u.config.FirstRunMaxResults)
	cancel()
	if err != nil {
		return nil, err
	}

	known, err := u.emailRepo.KnownIDs(userID)
	if err != nil {
		return nil, err
	}

	newCount := 0
	var failedIDs []string
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, seen := known[ref.ID]; seen {
			continue
		}

		fetchCtx, cancel := context.WithTimeout(ctx, mailFetchTimeout)
		meta, err := u.mailProvider.GetMetadata(fetchCtx, creds, ref.ID)
		cancel()
		if err != nil {
			log.Printf("[SYNC] Failed to fetch metadata for %s: %v", ref.ID, err)
			failedIDs = append(failedIDs, ref.ID)
			continue
		}

		snapshot := &emaildomain.EmailSnapshot{
			ID:         meta.ID,
			UserID:     userID,
			Subject:    meta.Subject,
			From:       meta.From,
			Date:       meta.Date,
			ReceivedAt: meta.ReceivedAt,
			Snippet:    emaildomain.Snippet(meta.Subject, snippetMaxLen),
			Processed:  false,
		}

		created, err := u.emailRepo.CreateIfAbsent(snapshot)
		if err != nil {
			log.Printf("[SYNC] Failed to store snapshot %s: %v", meta.ID, err)
			failedIDs = append(failedIDs, meta.ID)
			continue
		}
		if created {
			newCount++
		}
	}

	// The watermark moves after the batch regardless of individual item
	// failures; failed ids are reported, not retried here
	if err := u.stateRepo.SetLastFetchTime(userID, time.Now()); err != nil {
		log.Printf("[SYNC] Failed to advance watermark: %v", err)
	}

	emails, err := u.ListEmails(userID)
	if err != nil {
		return nil, err
	}

	if newCount > 0 || len(failedIDs) > 0 {
		log.Printf("[SYNC] user=%s new=%d failed=%d total=%d", userID, newCount, len(failedIDs), len(emails))
	}

	return &SyncResult{
		Emails:           emails,
		NewEmailsCount:   newCount,
		TotalEmailsCount: len(emails),
		FailedIDs:        failedIDs,
	}, nil
}
