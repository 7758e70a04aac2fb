package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_List(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuditService(store.Audit())
	ctx := context.Background()

	for i := 0; i < audit.MaxListLimit+20; i++ {
		require.NoError(t, store.Audit().Log(ctx, audit.Event{
			ActorID:   "8d3c2b1a-0f9e-4d8c-b7a6-5e4d3c2b1a09",
			ActorRole: "ADMIN",
			Action:    fmt.Sprintf("POST /api/v1/admin/accounts #%d", i),
		}))
	}

	got, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, audit.DefaultListLimit)
	assert.Equal(t, fmt.Sprintf("POST /api/v1/admin/accounts #%d", audit.MaxListLimit+19), got[0].Action)

	got, err = svc.List(ctx, 10_000)
	require.NoError(t, err)
	assert.Len(t, got, audit.MaxListLimit)

	got, err = svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
