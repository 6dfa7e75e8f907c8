package pubchem_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/vapor/pkg/adapters/pubchem"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Query(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[{"CID":8058,"MolecularFormula":"C6H14","MolecularWeight":"86.18","CanonicalSMILES":"CCCCCC","IUPACName":"hexane"}]}}`))
	}))
	defer srv.Close()

	c := pubchem.New(pubchem.WithBaseURL(srv.URL + "/"))
	record, err := c.Query(context.Background(), "n hexane")
	require.NoError(t, err)

	assert.Equal(t, "/compound/name/n%20hexane/property/MolecularFormula,MolecularWeight,CanonicalSMILES,IUPACName/JSON", gotPath)
	assert.Equal(t, "n hexane", record.Name)
	assert.Equal(t, "C6H14", record.Formula)
	assert.Equal(t, "CCCCCC", record.SMILES)
	assert.InDelta(t, 86.18, record.MolecularWeight, 1e-9)
	assert.False(t, record.HasVolatility())
	assert.True(t, record.HasStructure())
}

func TestClient_QueryFallsBackToConnectivitySMILES(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[{"CID":702,"MolecularFormula":"C2H6O","MolecularWeight":46.07,"ConnectivitySMILES":"CCO"}]}}`))
	}))
	defer srv.Close()

	record, err := pubchem.New(pubchem.WithBaseURL(srv.URL)).Query(context.Background(), "ethanol")
	require.NoError(t, err)
	assert.Equal(t, "CCO", record.SMILES)
	assert.InDelta(t, 46.07, record.MolecularWeight, 1e-9)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		noData  bool
		wantErr string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"Fault":{"Code":"PUGREST.NotFound"}}`, noData: true},
		{name: "empty table", status: http.StatusOK, body: `{"PropertyTable":{"Properties":[]}}`, noData: true},
		{name: "server error", status: http.StatusServiceUnavailable, wantErr: "unexpected status 503"},
		{name: "bad json", status: http.StatusOK, body: `{"PropertyTable":`, wantErr: "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := pubchem.New(pubchem.WithBaseURL(srv.URL)).Query(context.Background(), "x")
			require.Error(t, err)
			if tt.noData {
				assert.ErrorIs(t, err, domain.ErrNoData)
				return
			}
			assert.NotErrorIs(t, err, domain.ErrNoData)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}

func TestClient_RespectsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := pubchem.New(pubchem.WithBaseURL(srv.URL)).Query(ctx, "slow")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_EmptyName(t *testing.T) {
	_, err := pubchem.New().Query(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrNoData)
}
