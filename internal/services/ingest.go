package services

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/repos"
	"github.com/lrmsph/lrms-backend/internal/types"
)

// IngestService parses an uploaded spreadsheet of learning materials,
// resolves taxonomy names against the reference tables and bulk-inserts the
// valid rows. The temporary file is removed on every exit path.
type IngestService interface {
	ParseExcelFile(ctx context.Context, filePath string) Result
}

type ingestService struct {
	log          *logger.Logger
	taxonomyRepo repos.TaxonomyRepo
	materialRepo repos.MaterialRepo
	now          func() time.Time
}

func NewIngestService(baseLog *logger.Logger, taxonomyRepo repos.TaxonomyRepo, materialRepo repos.MaterialRepo) IngestService {
	serviceLog := baseLog.With("service", "IngestService")
	return &ingestService{
		log:          serviceLog,
		taxonomyRepo: taxonomyRepo,
		materialRepo: materialRepo,
		now:          time.Now,
	}
}

// taxonomyLookups maps human-readable names to store ids, one map per
// classification dimension. Entries with empty names are never valid
// resolution targets and are skipped when building the maps.
type taxonomyLookups struct {
	gradeLevels   map[string]uint
	learningAreas map[string]uint
	tracks        map[string]uint
	components    map[string]uint
	strands       map[string]uint
	types         map[string]uint
	subjectTypes  map[string]uint
}

type rowContext struct {
	lookups *taxonomyLookups
	now     time.Time
}

// columnRule binds a recognized spreadsheet header (exact, case-sensitive)
// to the material field it populates. Unrecognized columns are ignored and
// missing recognized columns leave their fields unset.
type columnRule struct {
	Header string
	Apply  func(m *types.Material, cell string, rc rowContext)
}

var materialColumns = []columnRule{
	{"Title", func(m *types.Material, cell string, _ rowContext) {
		m.Title = strings.TrimSpace(cell)
	}},
	{"Description", func(m *types.Material, cell string, _ rowContext) {
		m.Description = strPtr(cell)
	}},
	{"Downloads", func(m *types.Material, cell string, _ rowContext) {
		if v, err := strconv.Atoi(strings.TrimSpace(cell)); err == nil {
			m.Downloads = &v
		}
	}},
	{"Rating", func(m *types.Material, cell string, _ rowContext) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			m.Rating = &v
		}
	}},
	{"Uploaded At", func(m *types.Material, cell string, rc rowContext) {
		m.UploadedAt = parseUploadedAt(cell, rc.now)
	}},
	{"Intended Users", func(m *types.Material, cell string, _ rowContext) {
		m.IntendedUsers = strPtr(cell)
	}},
	{"Topic", func(m *types.Material, cell string, _ rowContext) {
		m.Topic = strPtr(cell)
	}},
	{"Language", func(m *types.Material, cell string, _ rowContext) {
		m.Language = strPtr(cell)
	}},
	{"Objective", func(m *types.Material, cell string, _ rowContext) {
		m.Objective = strPtr(cell)
	}},
	{"Education Type", func(m *types.Material, cell string, _ rowContext) {
		m.EducationType = strPtr(cell)
	}},
	{"Grade Level", func(m *types.Material, cell string, rc rowContext) {
		m.GradeLevelID = resolveName(rc.lookups.gradeLevels, cell)
	}},
	{"Learning Area", func(m *types.Material, cell string, rc rowContext) {
		m.LearningAreaID = resolveName(rc.lookups.learningAreas, cell)
	}},
	{"Track", func(m *types.Material, cell string, rc rowContext) {
		m.TrackID = resolveName(rc.lookups.tracks, cell)
	}},
	{"Component", func(m *types.Material, cell string, rc rowContext) {
		m.ComponentID = resolveName(rc.lookups.components, cell)
	}},
	{"Strand", func(m *types.Material, cell string, rc rowContext) {
		m.StrandID = resolveName(rc.lookups.strands, cell)
	}},
	{"Type", func(m *types.Material, cell string, rc rowContext) {
		m.TypeID = resolveName(rc.lookups.types, cell)
	}},
	{"Subject Type", func(m *types.Material, cell string, rc rowContext) {
		m.SubjectTypeID = resolveName(rc.lookups.subjectTypes, cell)
	}},
}

func (s *ingestService) ParseExcelFile(ctx context.Context, filePath string) Result {
	defer s.removeTempFile(filePath)

	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		s.log.Error("Failed to open workbook", "path", filePath, "error", err)
		return Result{Success: false, Message: "Error processing file", Error: err.Error()}
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return Result{Success: false, Message: "Error processing file", Error: "workbook has no sheets"}
	}

	// First sheet only.
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		s.log.Error("Failed to read sheet rows", "sheet", sheets[0], "error", err)
		return Result{Success: false, Message: "Error processing file", Error: err.Error()}
	}

	lookups, err := s.loadLookups(ctx)
	if err != nil {
		s.log.Error("Failed to load taxonomy lookups", "error", err)
		return Result{Success: false, Message: "Error processing file", Error: err.Error()}
	}

	materials := mapRows(rows, rowContext{lookups: lookups, now: s.now()})
	if len(materials) == 0 {
		return Result{Success: false, Message: "No valid material data found in the file."}
	}

	inserted, err := s.materialRepo.BulkInsert(ctx, nil, materials)
	if err != nil {
		s.log.Error("Bulk insert failed", "error", err)
		return Result{Success: false, Message: "Error processing file", Error: err.Error()}
	}

	s.log.Info("Spreadsheet ingested", "rows", len(rows)-1, "valid", len(materials), "inserted", inserted)
	return Result{Success: true, Message: "File parsed and data saved successfully", Count: inserted}
}

// loadLookups fetches all seven taxonomy tables concurrently and builds the
// name -> id maps. Duplicate names resolve last-write-wins in listing order.
func (s *ingestService) loadLookups(ctx context.Context) (*taxonomyLookups, error) {
	var (
		gradeLevels   []types.GradeLevel
		learningAreas []types.LearningArea
		tracks        []types.Track
		components    []types.Component
		strands       []types.Strand
		typeEntries   []types.Type
		subjectTypes  []types.SubjectType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		gradeLevels, err = s.taxonomyRepo.ListGradeLevels(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		learningAreas, err = s.taxonomyRepo.ListLearningAreas(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		tracks, err = s.taxonomyRepo.ListTracks(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		components, err = s.taxonomyRepo.ListComponents(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		strands, err = s.taxonomyRepo.ListStrands(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		typeEntries, err = s.taxonomyRepo.ListTypes(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		subjectTypes, err = s.taxonomyRepo.ListSubjectTypes(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookups := &taxonomyLookups{
		gradeLevels:   make(map[string]uint, len(gradeLevels)),
		learningAreas: make(map[string]uint, len(learningAreas)),
		tracks:        make(map[string]uint, len(tracks)),
		components:    make(map[string]uint, len(components)),
		strands:       make(map[string]uint, len(strands)),
		types:         make(map[string]uint, len(typeEntries)),
		subjectTypes:  make(map[string]uint, len(subjectTypes)),
	}
	for _, e := range gradeLevels {
		if e.Name != "" {
			lookups.gradeLevels[e.Name] = e.ID
		}
	}
	for _, e := range learningAreas {
		if e.Name != "" {
			lookups.learningAreas[e.Name] = e.ID
		}
	}
	for _, e := range tracks {
		if e.Name != "" {
			lookups.tracks[e.Name] = e.ID
		}
	}
	for _, e := range components {
		if e.Name != "" {
			lookups.components[e.Name] = e.ID
		}
	}
	for _, e := range strands {
		if e.Name != "" {
			lookups.strands[e.Name] = e.ID
		}
	}
	for _, e := range typeEntries {
		if e.Name != "" {
			lookups.types[e.Name] = e.ID
		}
	}
	for _, e := range subjectTypes {
		if e.Name != "" {
			lookups.subjectTypes[e.Name] = e.ID
		}
	}
	return lookups, nil
}

// mapRows turns the raw sheet (header row first) into material candidates,
// dropping rows without a title.
func mapRows(rows [][]string, rc rowContext) []*types.Material {
	if len(rows) < 2 {
		return nil
	}

	headerIndex := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headerIndex[h] = i
	}

	materials := make([]*types.Material, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := mapRow(headerIndex, row, rc)
		if m.Title == "" {
			// No title, no material. Dropped without reporting.
			continue
		}
		materials = append(materials, m)
	}
	return materials
}

func mapRow(headerIndex map[string]int, row []string, rc rowContext) *types.Material {
	m := &types.Material{UploadedAt: rc.now}
	for _, rule := range materialColumns {
		idx, ok := headerIndex[rule.Header]
		if !ok || idx >= len(row) {
			continue
		}
		cell := row[idx]
		if strings.TrimSpace(cell) == "" {
			continue
		}
		rule.Apply(m, cell, rc)
	}
	return m
}

// resolveName maps a taxonomy name to its id. A present-but-unmatched name
// yields a nil foreign key rather than an error; unresolved categorization
// is tolerated by design.
func resolveName(lookup map[string]uint, cell string) *uint {
	name := strings.TrimSpace(cell)
	if name == "" {
		return nil
	}
	id, ok := lookup[name]
	if !ok {
		return nil
	}
	return &id
}

var uploadedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
}

// parseUploadedAt tries the accepted layouts and falls back to the ingestion
// wall-clock time when the cell is absent or unparseable. Falling back (as
// opposed to rejecting the row) keeps a bad date from discarding an
// otherwise valid material.
func parseUploadedAt(cell string, now time.Time) time.Time {
	raw := strings.TrimSpace(cell)
	if raw == "" {
		return now
	}
	for _, layout := range uploadedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}

func (s *ingestService) removeTempFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Failed to delete temporary file", "path", filePath, "error", err)
		}
		return
	}
	s.log.Debug("Deleted temporary file", "path", filePath)
}

func strPtr(s string) *string {
	return &s
}
