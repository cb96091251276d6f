package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

/// This file tracks the total amount moved per account per calendar day.
/// It is an operational read model fed after completed transactions; the
/// wallets and transactions tables remain the source of truth.

// DailyVolume is the running total for one account for one day.
type DailyVolume struct {
	AccountID   string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// isSameDay checks if two times are on the same calendar day
func isSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (r *RedisService) TrackDailyVolume(ctx context.Context, accountID string, amount decimal.Decimal) error {
	key := fmt.Sprintf("daily_volume:%s", accountID)

	volume, err := r.GetDailyVolume(ctx, accountID)
	if err != nil {
		return err
	}

	// If no volume exists for today, start a fresh one
	if volume.CreatedAt.IsZero() || !isSameDay(volume.CreatedAt, time.Now()) {
		volume = DailyVolume{
			AccountID:   accountID,
			TotalAmount: amount.Abs(),
			CreatedAt:   time.Now(),
		}
	} else {
		volume.TotalAmount = volume.TotalAmount.Add(amount.Abs())
	}

	err = r.client.HSet(ctx, key, map[string]interface{}{
		"account_id":   volume.AccountID,
		"total_amount": volume.TotalAmount.String(),
		"created_at":   volume.CreatedAt.Format(time.RFC3339),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to store daily volume: %w", err)
	}

	// Expire at end of day
	midnight := time.Now().Add(24 * time.Hour).Truncate(24 * time.Hour)
	err = r.client.ExpireAt(ctx, key, midnight).Err()
	if err != nil {
		return fmt.Errorf("failed to set expiration: %w", err)
	}

	return nil
}

func (r *RedisService) GetDailyVolume(ctx context.Context, accountID string) (DailyVolume, error) {
	key := fmt.Sprintf("daily_volume:%s", accountID)

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return DailyVolume{}, fmt.Errorf("failed to get daily volume: %w", err)
	}

	if len(fields) == 0 {
		return DailyVolume{
			AccountID:   accountID,
			TotalAmount: decimal.Zero,
		}, nil
	}

	createdAt, err := time.Parse(time.RFC3339, fields["created_at"])
	if err != nil {
		return DailyVolume{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	amount, err := decimal.NewFromString(fields["total_amount"])
	if err != nil {
		return DailyVolume{}, fmt.Errorf("failed to parse total_amount: %w", err)
	}

	volume := DailyVolume{
		AccountID:   fields["account_id"],
		TotalAmount: amount,
		CreatedAt:   createdAt,
	}

	// A stale entry from a previous day counts as empty
	if !isSameDay(volume.CreatedAt, time.Now()) {
		return DailyVolume{
			AccountID:   accountID,
			TotalAmount: decimal.Zero,
		}, nil
	}

	return volume, nil
}
