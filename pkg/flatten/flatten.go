// Package flatten turns a graph of gorm models into nested ordered records.
//
// Column values are copied as they are. Relationships are expanded up to a
// fixed number of hops; past that depth a list relationship becomes an
// empty list and a singular one becomes null. The relationship leading back
// to the node a walk came from is never followed, and a node reached a
// second time is written as its columns only, so cyclic graphs terminate.
package flatten

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Extra is a computed key appended to the root record.
type Extra struct {
	Key   string
	Value interface{}
}

// Options control a Flatten call.
type Options struct {
	// Levels is the number of relationship hops to expand.
	Levels int
	// Ignore names relationships that are never expanded, by Go field name
	// or record key.
	Ignore []string
	Extras []Extra
	// DB, when set, loads relationships that were not preloaded.
	DB *gorm.DB
	// Omit reports related objects to leave out, called with a pointer to
	// each one. Omitted list items are dropped and an omitted singular
	// relationship is null.
	Omit func(obj interface{}) bool
}

// Flattener caches parsed schemas between calls.
type Flattener struct {
	cache *sync.Map
	namer schema.Namer
}

func New() *Flattener {
	return &Flattener{cache: &sync.Map{}, namer: schema.NamingStrategy{}}
}

var defaultFlattener = New()

// Flatten flattens obj, a model struct or pointer to one, with a shared
// schema cache.
func Flatten(obj interface{}, opts Options) (*Record, error) {
	return defaultFlattener.Flatten(obj, opts)
}

type walk struct {
	f       *Flattener
	opts    Options
	ignore  map[string]bool
	visited map[string]*Record
}

func (f *Flattener) Flatten(obj interface{}, opts Options) (*Record, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("flatten: nil %T", obj)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("flatten: expected a struct, got %T", obj)
	}
	if !v.CanAddr() {
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		v = cp
	}

	w := &walk{f: f, opts: opts, ignore: map[string]bool{}, visited: map[string]*Record{}}
	for _, name := range opts.Ignore {
		w.ignore[name] = true
	}

	rec, err := w.node(v, opts.Levels, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range opts.Extras {
		rec.Set(e.Key, e.Value)
	}
	return rec, nil
}

func (f *Flattener) schemaOf(t reflect.Type) (*schema.Schema, error) {
	return schema.Parse(reflect.New(t).Interface(), f.cache, f.namer)
}

func (w *walk) node(v reflect.Value, levels int, back *schema.Relationship) (*Record, error) {
	sch, err := w.f.schemaOf(v.Type())
	if err != nil {
		return nil, err
	}

	id := identity(sch, v)
	if seen, ok := w.visited[id]; ok {
		return seen, nil
	}

	rec := columns(sch, v)
	// Register the column-only form so cycles resolve to it.
	w.visited[id] = columns(sch, v)

	// Every relationship key is present whether or not it is expanded.
	for _, rel := range orderedRelations(sch) {
		key := w.f.namer.ColumnName("", rel.Name)
		list := rel.Type == schema.HasMany || rel.Type == schema.Many2Many
		rec.Set(key, emptyValue(list))

		if levels <= 0 || w.ignore[rel.Name] || w.ignore[key] || isInverse(rel, back) {
			continue
		}

		field := v.FieldByIndex(rel.Field.StructField.Index)
		if w.opts.DB != nil && unloaded(field) {
			if err := w.load(v, rel, field); err != nil {
				return nil, err
			}
		}

		if list {
			items := make([]interface{}, 0, field.Len())
			for i := 0; i < field.Len(); i++ {
				if w.omitted(field.Index(i)) {
					continue
				}
				child, err := w.child(field.Index(i), levels-1, rel)
				if err != nil {
					return nil, err
				}
				items = append(items, child)
			}
			rec.Set(key, items)
			continue
		}

		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				rec.Set(key, nil)
				continue
			}
			field = field.Elem()
		}
		if w.omitted(field) {
			continue
		}
		child, err := w.child(field, levels-1, rel)
		if err != nil {
			return nil, err
		}
		rec.Set(key, child)
	}
	return rec, nil
}

func (w *walk) child(v reflect.Value, levels int, via *schema.Relationship) (*Record, error) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	return w.node(v, levels, via)
}

func (w *walk) omitted(v reflect.Value) bool {
	if w.opts.Omit == nil {
		return false
	}
	switch {
	case v.Kind() == reflect.Ptr:
		return !v.IsNil() && w.opts.Omit(v.Interface())
	case v.CanAddr():
		return w.opts.Omit(v.Addr().Interface())
	}
	return w.opts.Omit(v.Interface())
}

func (w *walk) load(owner reflect.Value, rel *schema.Relationship, field reflect.Value) error {
	if !field.CanAddr() {
		return nil
	}
	err := w.opts.DB.Model(owner.Addr().Interface()).Association(rel.Name).Find(field.Addr().Interface())
	if err != nil {
		return fmt.Errorf("flatten: loading %s.%s: %w", rel.Schema.Name, rel.Name, err)
	}
	return nil
}

func emptyValue(list bool) interface{} {
	if list {
		return []interface{}{}
	}
	return nil
}

func unloaded(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Slice, reflect.Ptr:
		return field.IsNil()
	}
	return false
}

func columns(sch *schema.Schema, v reflect.Value) *Record {
	rec := NewRecord()
	for _, field := range sch.Fields {
		if field.DBName == "" || !field.Readable {
			continue
		}
		rec.Set(field.DBName, v.FieldByIndex(field.StructField.Index).Interface())
	}
	return rec
}

func identity(sch *schema.Schema, v reflect.Value) string {
	parts := []string{sch.Table}
	zero := true
	for _, pk := range sch.PrimaryFields {
		pv := v.FieldByIndex(pk.StructField.Index)
		if !pv.IsZero() {
			zero = false
		}
		parts = append(parts, fmt.Sprint(pv.Interface()))
	}
	if zero {
		// Unsaved rows have no key yet; fall back to their address.
		parts = append(parts, fmt.Sprintf("%p", v.Addr().Interface()))
	}
	return strings.Join(parts, ":")
}

// orderedRelations returns the relationships declared on sch's own struct
// fields, in field order. gorm also registers back references such as
// _Project_Networks on the child schema; their Field belongs to the parent
// struct and they are skipped.
func orderedRelations(sch *schema.Schema) []*schema.Relationship {
	rels := make([]*schema.Relationship, 0, len(sch.Relationships.Relations))
	for name, rel := range sch.Relationships.Relations {
		if strings.HasPrefix(name, "_") || rel.Field == nil || rel.Field.Schema == nil ||
			rel.Field.Schema.ModelType != sch.ModelType {
			continue
		}
		rels = append(rels, rel)
	}
	sort.Slice(rels, func(i, j int) bool {
		return lessIndex(rels[i].Field.StructField.Index, rels[j].Field.StructField.Index)
	})
	return rels
}

func lessIndex(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// isInverse reports whether rel walks back along back: both connect the
// same two tables through the same foreign key columns.
func isInverse(rel, back *schema.Relationship) bool {
	if back == nil || rel.FieldSchema.Table != back.Schema.Table {
		return false
	}
	// Self-referencing tables: following the same relationship again goes
	// further away, not back.
	if rel.Schema.Table == back.Schema.Table && rel.Name == back.Name {
		return false
	}
	a, b := foreignKeys(rel), foreignKeys(back)
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func foreignKeys(rel *schema.Relationship) map[string]bool {
	table := rel.FieldSchema.Table
	switch {
	case rel.JoinTable != nil:
		table = rel.JoinTable.Table
	case rel.Type == schema.BelongsTo:
		table = rel.Schema.Table
	}
	keys := map[string]bool{}
	for _, ref := range rel.References {
		if ref.ForeignKey != nil {
			keys[table+"."+ref.ForeignKey.DBName] = true
		}
	}
	return keys
}
