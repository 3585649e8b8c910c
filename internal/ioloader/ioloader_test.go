package ioloader_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/internal/ioloader"
	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/config"
	"github.com/gnames/tsbrowse/pkg/errcode"
	"github.com/gnames/tsbrowse/pkg/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(f catalog.Fetcher) catalog.Loader {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(2)})
	return ioloader.New(cfg, f)
}

func codes(ss []schema.Standard) []string {
	res := make([]string, len(ss))
	for i, v := range ss {
		res[i] = v.Code
	}
	return res
}

func TestSingleFlight(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFetcher()
	f.gate = make(chan struct{})
	l := newLoader(f)
	key := catalog.SubjectKey("it")
	assert.Equal(catalog.Empty, l.State(key))

	num := 10
	results := make([][]schema.Standard, num)
	var wg sync.WaitGroup
	for i := range num {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.LoadSubjectStandards(ctx, "it")
			assert.Nil(err)
			results[i] = res
		}()
	}

	require.Eventually(t, func() bool {
		return l.State(key) == catalog.Pending
	}, time.Second, time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(1, f.count("/by_subject/it.json"))
	assert.Equal(catalog.Ready, l.State(key))
	for i := range num {
		require.Len(t, results[i], 2)
		assert.Same(&results[0][0], &results[i][0])
	}
	assert.Same(&results[0][0], &l.SubjectStandards("it")[0])
}

func TestRetryAfterFailure(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFetcher()
	f.fails["/manifest.json"] = 1
	l := newLoader(f)

	_, err := l.LoadManifest(ctx)
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(errcode.LoaderManifestError, gnErr.Code)
	assert.Equal(catalog.Empty, l.State(catalog.KeyManifest))
	assert.Nil(l.Manifest())

	m, err := l.LoadManifest(ctx)
	require.Nil(t, err)
	assert.Equal([]string{"it", "math", "pe"}, m.Slugs())
	assert.Equal("2025-09", m.Extra["version"])
	assert.Equal(2, f.count("/manifest.json"))
	assert.Equal(catalog.Ready, l.State(catalog.KeyManifest))
}

func TestAbandonWait(t *testing.T) {
	assert := assert.New(t)
	f := newFetcher()
	f.gate = make(chan struct{})
	l := newLoader(f)
	key := catalog.SubjectKey("pe")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := l.LoadSubjectStandards(ctx, "pe")
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		return l.State(key) == catalog.Pending
	}, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(<-errCh, context.Canceled)

	close(f.gate)
	require.Eventually(t, func() bool {
		return l.State(key) == catalog.Ready
	}, time.Second, time.Millisecond)

	res, err := l.LoadSubjectStandards(context.Background(), "pe")
	require.Nil(t, err)
	assert.Equal([]string{"PE-H1-001"}, codes(res))
	assert.Equal(1, f.count("/by_subject/pe.json"))
}

func TestNormalizedSubject(t *testing.T) {
	l := newLoader(newFetcher())
	res, err := l.LoadSubjectStandards(context.Background(), "it")
	require.Nil(t, err)
	require.Len(t, res, 2)

	want := schema.Standard{
		ID:          "IT-H2-001",
		Code:        "IT-H2-001",
		SubjectSlug: "it",
		GradeBand:   "H2",
		Domain:      "算法",
		Standard:    "Describe an algorithm",
		TSPrimary:   []string{"TS3.2"},
		TSSecondary: []string{"TS1"},
		Resources:   []any{},
	}
	if diff := cmp.Diff(want, res[0]); diff != "" {
		t.Errorf("normalized standard mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeError(t *testing.T) {
	l := newLoader(newFetcher())
	_, err := l.LoadSubjectStandards(context.Background(), "broken")
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.LoaderSubjectError, gnErr.Code)
	assert.Equal(t, catalog.Empty, l.State(catalog.SubjectKey("broken")))
}

func TestLoadMultiple(t *testing.T) {
	ctx := context.Background()

	t.Run("order", func(t *testing.T) {
		l := newLoader(newFetcher())
		res, err := l.LoadMultipleSubjectStandards(ctx, []string{"pe", "it", "math"})
		require.Nil(t, err)
		assert.Equal(t, []string{
			"PE-H1-001", "IT-H2-001", "IT-H3-001", "ML-H1-001",
		}, codes(res))
	})

	t.Run("empty", func(t *testing.T) {
		l := newLoader(newFetcher())
		res, err := l.LoadMultipleSubjectStandards(ctx, nil)
		require.Nil(t, err)
		assert.Empty(t, res)
	})

	t.Run("failure", func(t *testing.T) {
		l := newLoader(newFetcher())
		_, err := l.LoadMultipleSubjectStandards(ctx, []string{"it", "arts", "pe"})
		assert.NotNil(t, err)
		assert.Equal(t, catalog.Ready, l.State(catalog.SubjectKey("it")))
		assert.Equal(t, catalog.Ready, l.State(catalog.SubjectKey("pe")))
		assert.Equal(t, catalog.Empty, l.State(catalog.SubjectKey("arts")))
	})

	t.Run("partial", func(t *testing.T) {
		l := newLoader(newFetcher())
		res, errs := l.LoadMultipleSubjectStandardsPartial(ctx,
			[]string{"it", "arts", "pe"})
		assert.Equal(t, []string{"IT-H2-001", "IT-H3-001", "PE-H1-001"}, codes(res))
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, "arts")
	})
}

func TestLoadAllStandards(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFetcher()
	l := newLoader(f)

	res, err := l.LoadAllStandards(ctx)
	require.Nil(t, err)
	assert.Len(res, 4)

	again, err := l.LoadAllStandards(ctx)
	require.Nil(t, err)
	assert.Same(&res[0], &again[0])
	assert.Equal(1, f.count("/manifest.json"))
	assert.Equal(1, f.count("/by_subject/math.json"))
}

func TestInitializeData(t *testing.T) {
	assert := assert.New(t)
	l := newLoader(newFetcher())

	assert.False(l.IsDataReady())
	assert.Empty(l.SubjectsMeta())
	assert.Empty(l.SkillsMeta())
	assert.Empty(l.SkillsInfo())
	assert.Empty(l.SubjectsFromManifest())
	assert.Empty(l.SubjectStandards("it"))
	assert.Empty(l.DomainsForSubject("it"))
	assert.Empty(l.AllSubjectStats())

	require.Nil(t, l.InitializeData(context.Background()))
	assert.True(l.IsDataReady())

	meta, ok := l.SubjectMetaBySlug("math")
	assert.True(ok)
	assert.Equal("数学", meta.SubjectCN)
	_, ok = l.SubjectMetaBySlug("pe")
	assert.False(ok)

	skill, ok := l.SkillByCode("TS3")
	assert.True(ok)
	sub, ok := skill.Subskill("TS3.2")
	assert.True(ok)
	assert.Equal("Decompose", sub.NameEN)
	assert.Equal("1.0", l.SkillsInfo()["version"])

	assert.Equal([]string{"数据与编码", "算法"}, l.DomainsForSubject("it"))
	assert.Equal([]string{}, l.DomainsForSubject("math"))
}

func TestIndexes(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l := newLoader(newFetcher())

	stats, err := l.LoadSubjectStatsIndex(ctx)
	require.Nil(t, err)
	assert.Equal(2, stats["it"].Total)
	st, ok := l.SubjectStats("it")
	assert.True(ok)
	assert.Equal(1, st.GradeBands["H3"])
	_, ok = l.SubjectStats("pe")
	assert.False(ok)

	c2s, err := l.LoadCodeToSubjectIndex(ctx)
	require.Nil(t, err)
	assert.Equal("math", c2s["ML-H1-001"])

	subjects, err := l.SubjectsForSkill(ctx, "TS3.2")
	require.Nil(t, err)
	assert.Equal([]string{"it", "math"}, subjects)

	subjects, err = l.SubjectsForSkill(ctx, "TS7")
	require.Nil(t, err)
	assert.Equal([]string{}, subjects)
}

func TestLoadStandardsForSkill(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFetcher()
	l := newLoader(f)

	res, err := l.LoadStandardsForSkill(ctx, "TS3.2", schema.Filters{
		Subjects: []string{"it", "pe"},
	})
	require.Nil(t, err)
	assert.Equal([]string{"IT-H2-001"}, codes(res))
	assert.Equal(1, f.count("/by_subject/it.json"))
	assert.Equal(0, f.count("/by_subject/math.json"))
	assert.Equal(0, f.count("/by_subject/pe.json"))

	res, err = l.LoadStandardsForSkill(ctx, "TS3", schema.Filters{})
	require.Nil(t, err)
	assert.Equal([]string{"IT-H2-001", "ML-H1-001"}, codes(res))

	res, err = l.LoadStandardsForSkill(ctx, "TS7", schema.Filters{})
	require.Nil(t, err)
	assert.Empty(res)
}

func TestLoadStandardByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("resident", func(t *testing.T) {
		f := newFetcher()
		l := newLoader(f)
		_, err := l.LoadSubjectStandards(ctx, "it")
		require.Nil(t, err)
		res, err := l.LoadStandardByCode(ctx, "IT-H3-001")
		require.Nil(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "H3", res.GradeBand)
		assert.Equal(t, 1, f.count("/by_subject/it.json"))
	})

	t.Run("prefix", func(t *testing.T) {
		f := newFetcher()
		l := newLoader(f)
		res, err := l.LoadStandardByCode(ctx, "ML-H1-001")
		require.Nil(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "math", res.SubjectSlug)
		assert.Equal(t, 0, f.count("/manifest.json"))
		assert.Equal(t, 0, f.count("/by_subject/it.json"))
	})

	t.Run("prefix not found", func(t *testing.T) {
		f := newFetcher()
		l := newLoader(f)
		res, err := l.LoadStandardByCode(ctx, "PE-H3-999")
		require.Nil(t, err)
		assert.Nil(t, res)
		assert.Equal(t, 0, f.count("/manifest.json"))
		assert.Equal(t, 1, f.count("/by_subject/pe.json"))
	})

	t.Run("scan", func(t *testing.T) {
		f := newFetcher()
		l := newLoader(f)
		res, err := l.LoadStandardByCode(ctx, "XX-H1-001")
		require.Nil(t, err)
		assert.Nil(t, res)
		assert.Equal(t, 1, f.count("/manifest.json"))
		assert.Equal(t, 1, f.count("/by_subject/math.json"))
		assert.Equal(t, 1, f.count("/by_subject/pe.json"))
	})
}
