package projectinfo

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-projectinfo/cache"
	"github.com/goliatone/go-projectinfo/idgen"
)

// Cache keys. They match the keys other services sharing the cache read.
const (
	KeyProjectList  = "projectinfoPojoList_"
	KeyIDAndNameMap = "projectInfoIdAndNameMap_"
)

// Service exposes project info CRUD on top of a Store and keeps the full
// listing and the id to name map in a Cache.
//
// Known staleness, kept on purpose until product decides otherwise:
//   - Add, Update and DeleteByID only clear the full listing, never the id
//     to name map, which therefore lives until it is removed externally.
//   - DeleteAllByIDs clears nothing, so FindAll can keep returning deleted
//     records until the next single record write.
type Service struct {
	store Store
	cache cache.Cache
	ids   idgen.Generator

	listKey    string
	idNamesKey string
}

// Option configures a Service.
type Option func(*Service)

// WithKeySerializer derives the cache keys through ks, e.g. to namespace them.
func WithKeySerializer(ks cache.KeySerializer) Option {
	return func(s *Service) {
		s.listKey = ks.SerializeKey(KeyProjectList)
		s.idNamesKey = ks.SerializeKey(KeyIDAndNameMap)
	}
}

// NewService creates a Service.
func NewService(store Store, c cache.Cache, ids idgen.Generator, opts ...Option) *Service {
	s := &Service{
		store:      store,
		cache:      c,
		ids:        ids,
		listKey:    KeyProjectList,
		idNamesKey: KeyIDAndNameMap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindAll returns every record, from the cache when the listing is cached.
func (s *Service) FindAll(ctx context.Context) ([]ProjectInfo, error) {
	return cache.GetOrFetch(ctx, s.cache, s.listKey, func(ctx context.Context) ([]ProjectInfo, error) {
		return s.store.FindAll(ctx)
	})
}

// FindSearchPage returns the page-th (1-based) page of size records matching filter.
func (s *Service) FindSearchPage(ctx context.Context, filter Filter, page, size int) (Page, error) {
	if page < 1 {
		return Page{}, Invalid(errors.New("page must be at least 1"))
	}
	if size < 1 {
		return Page{}, Invalid(errors.New("size must be at least 1"))
	}

	rows, total, err := s.store.FindPage(ctx, PageRequest{Index: page - 1, Size: size}, filter.Criteria()...)
	if err != nil {
		return Page{}, err
	}

	return Page{Rows: rows, Total: total, Number: page, Size: size}, nil
}

// FindSearch returns every record matching filter.
func (s *Service) FindSearch(ctx context.Context, filter Filter) ([]ProjectInfo, error) {
	return s.store.FindAll(ctx, filter.Criteria()...)
}

// FindByID returns the record with id or a not-found error.
func (s *Service) FindByID(ctx context.Context, id string) (ProjectInfo, error) {
	return s.store.FindByID(ctx, id)
}

// Add assigns an id when missing, defaults unset flags to false and saves
// the record. The saved record is returned.
func (s *Service) Add(ctx context.Context, record ProjectInfo) (ProjectInfo, error) {
	if record.ID == "" {
		id, err := s.ids.NextID()
		if err != nil {
			return ProjectInfo{}, err
		}
		record.ID = id
	}
	if record.CheckWhitelist == nil {
		record.CheckWhitelist = Bool(false)
	}
	if record.NotifyWhitelist == nil {
		record.NotifyWhitelist = Bool(false)
	}
	if record.OverrideIPWhitelist == nil {
		record.OverrideIPWhitelist = Bool(false)
	}

	if err := s.cache.Delete(ctx, s.listKey); err != nil {
		return ProjectInfo{}, err
	}

	return s.store.Save(ctx, record)
}

// Update replaces the stored record carrying record.ID. A record without a
// stored counterpart is inserted.
func (s *Service) Update(ctx context.Context, record ProjectInfo) error {
	if err := s.cache.Delete(ctx, s.listKey); err != nil {
		return err
	}
	_, err := s.store.Save(ctx, record)
	return err
}

// DeleteByID removes the record with id.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, s.listKey); err != nil {
		return err
	}
	return s.store.DeleteByID(ctx, id)
}

// DeleteAllByIDs removes all ids atomically. The cached listing is left as is.
func (s *Service) DeleteAllByIDs(ctx context.Context, ids []string) error {
	return s.store.DeleteAllByIDs(ctx, ids)
}

// FindByProjectName returns the record named name, or nil.
func (s *Service) FindByProjectName(ctx context.Context, name string) (*ProjectInfo, error) {
	return s.store.FindByProjectName(ctx, name)
}

// FindIDAndProjectName returns project names keyed by id, from the cache when
// the map is cached.
func (s *Service) FindIDAndProjectName(ctx context.Context) (map[string]string, error) {
	return cache.GetOrFetch(ctx, s.cache, s.idNamesKey, func(ctx context.Context) (map[string]string, error) {
		pairs, err := s.store.FindIDAndProjectName(ctx)
		if err != nil {
			return nil, err
		}
		return parseIDNamePairs(pairs), nil
	})
}

// FindByDepartmentIDAndProjectName returns the record named name in the
// department, or nil.
func (s *Service) FindByDepartmentIDAndProjectName(ctx context.Context, departmentID, name string) (*ProjectInfo, error) {
	return s.store.FindByDepartmentIDAndProjectName(ctx, departmentID, name)
}

// parseIDNamePairs splits "id,name" rows on the first comma. Later rows win
// on duplicate ids; a row without comma maps its whole text to "".
func parseIDNamePairs(pairs []string) map[string]string {
	names := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, name, _ := strings.Cut(pair, ",")
		names[id] = name
	}
	return names
}
