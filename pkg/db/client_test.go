package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type auditRecord struct {
	ID     int
	Action string
}

func newClientTestDB(t *testing.T) *Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&auditRecord{}); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}

	client := &Client{conn: conn}
	t.Cleanup(func() {
		client.conn.Exec("DELETE FROM audit_records")
	})
	return client
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	client := newClientTestDB(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&auditRecord{Action: "team.created"}).Error
	})
	if err != nil {
		t.Fatalf("committing transaction: %v", err)
	}

	var count int64
	if err := client.DB().Model(&auditRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("counting records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 committed record, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newClientTestDB(t)
	ctx := context.Background()

	if err := client.DB().Create(&auditRecord{Action: "member.invited"}).Error; err != nil {
		t.Fatalf("seeding baseline record: %v", err)
	}

	wantErr := errors.New("invite rejected")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&auditRecord{Action: "member.activated"}).Error; err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&auditRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("counting records: %v", err)
	}
	if count != 1 {
		t.Fatalf("rollback should leave only the baseline record, got %d", count)
	}
}

func TestPingReportsHealthyConnection(t *testing.T) {
	client := newClientTestDB(t)

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
