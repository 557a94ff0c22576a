package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/barangay-portal/internal/portalapi"
	"github.com/spec-kit/barangay-portal/internal/portalapi/portalapitest"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

func newFakeAPI(t *testing.T) (*portalapitest.Server, *portalapi.Client) {
	t.Helper()
	srv := portalapitest.New()
	t.Cleanup(srv.Close)
	client, err := portalapi.New(srv.URL, portalapi.Options{})
	require.NoError(t, err)
	return srv, client
}

func requireDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	require.Equal(t, status, domainErr.HTTPStatus)
	if message != "" {
		require.Equal(t, message, domainErr.Message)
	}
}
