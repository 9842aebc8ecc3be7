package batch_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glosaguard/internal/batch"
	"glosaguard/internal/domain"
	"glosaguard/internal/risk"
	"glosaguard/internal/validator"
	"glosaguard/internal/validator/tiss"
)

const guideDoc = `<ans>
	<beneficiario>
		<nomeBeneficiario>Maria Souza</nomeBeneficiario>
		<cpf>52998224725</cpf>
		<numeroCarteira>998877</numeroCarteira>
	</beneficiario>
	<procedimento><codigo>10101012</codigo><valor>8000</valor><data>2024-02-10</data></procedimento>
	<diagnostico><cid>J45</cid></diagnostico>
	<profissional><crm>12345SP</crm></profissional>
</ans>`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func writeGzip(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func newChecker() batch.Checker {
	opts := tiss.Options{Now: func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }}
	parser := tiss.NewParser(opts)
	return validator.NewEngine(parser, validator.NewBuiltinRegistry(parser.Rules()), risk.DefaultPolicy(), nil, nil, nil, nil)
}

func TestReadDocument_PlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "a.xml", []byte(guideDoc))
	gz := writeGzip(t, dir, "b.xml.gz", []byte(guideDoc))

	got, err := batch.ReadDocument(plain, 0)
	require.NoError(t, err)
	assert.Equal(t, guideDoc, string(got))

	got, err = batch.ReadDocument(gz, 0)
	require.NoError(t, err)
	assert.Equal(t, guideDoc, string(got))
}

func TestReadDocument_Limits(t *testing.T) {
	dir := t.TempDir()
	p := writeGzip(t, dir, "big.xml.gz", []byte(guideDoc))

	_, err := batch.ReadDocument(p, 10)
	assert.ErrorContains(t, err, "exceeds")

	got, err := batch.ReadDocument(p, int64(len(guideDoc)))
	require.NoError(t, err)
	assert.Len(t, got, len(guideDoc))
}

func TestReadDocument_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := batch.ReadDocument(filepath.Join(dir, "missing.xml"), 0)
	assert.Error(t, err)

	notGzip := writeFile(t, dir, "fake.gz", []byte("plain text"))
	_, err = batch.ReadDocument(notGzip, 0)
	assert.ErrorContains(t, err, "gzip")
}

func TestPool_Run_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ok.xml", []byte(guideDoc)),
		writeFile(t, dir, "broken.xml", []byte("<ans><x></ans>")),
		filepath.Join(dir, "missing.xml"),
		writeGzip(t, dir, "ok.xml.gz", []byte(guideDoc)),
	}

	pool := &batch.Pool{Workers: 2, Checker: newChecker()}
	results := pool.Run(context.Background(), paths)

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	require.NotNil(t, results[0].Result)
	assert.True(t, results[0].Result.Valid)
	assert.Equal(t, 0, results[0].Result.RiskScore)
	assert.Equal(t, domain.SubmissionReady, results[0].Result.Status)

	require.NotNil(t, results[1].Result)
	assert.False(t, results[1].Result.Valid)

	assert.Error(t, results[2].Err)
	assert.Nil(t, results[2].Result)
	assert.NotEmpty(t, results[2].Error)

	require.NotNil(t, results[3].Result)
	assert.Equal(t, results[0].Result.RiskScore, results[3].Result.RiskScore)
	assert.Equal(t, "ok.xml.gz", results[3].Name())
}

type countingChecker struct {
	inner   batch.Checker
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (c *countingChecker) Check(data []byte) *validator.CheckResult {
	n := c.active.Add(1)
	defer c.active.Add(-1)
	for {
		m := c.maxSeen.Load()
		if n <= m || c.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return c.inner.Check(data)
}

func TestPool_Run_BoundsConcurrency(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("guide-%02d.xml", i), []byte(guideDoc)))
	}
	checker := &countingChecker{inner: newChecker()}

	results := (&batch.Pool{Workers: 3, Checker: checker}).Run(context.Background(), paths)

	assert.Len(t, results, 12)
	assert.LessOrEqual(t, checker.maxSeen.Load(), int32(3))
}

func TestPool_Run_Cancelled(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "ok.xml", []byte(guideDoc))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := (&batch.Pool{Workers: 1, Checker: newChecker()}).Run(ctx, []string{p, p, p})

	require.Len(t, results, 3)
	for _, r := range results {
		if r.Err != nil {
			assert.ErrorIs(t, r.Err, context.Canceled)
			continue
		}
		assert.NotNil(t, r.Result)
	}
}
