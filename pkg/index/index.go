// Package index stores serialized trees in SQLite so code-search tools can
// query nodes by kind, position or text without re-parsing.
package index

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/syntax"
)

const batchSize = 500

// Index handles a SQLite node index.
type Index struct {
	db *gorm.DB
}

// Open opens (creating if needed) the index at dbPath and brings its schema
// up to date.
func Open(dbPath string) (*Index, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Index{db: db}, nil
}

// CheckMigration checks if the database schema is up to date.
func (ix *Index) CheckMigration() (bool, error) {
	return CheckMigration(ix.db)
}

func (ix *Index) Close() error {
	sqlDB, err := ix.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Store replaces everything indexed for tree.File.Path with root. Kind names
// come from tree.Kinds whether or not root carries them.
func (ix *Index) Store(tree *syntax.Tree, root *common.Node) error {
	path := tree.File.Path
	rows := flatten(path, tree.Kinds, root)

	return ix.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("path = ?", path).Delete(&NodeRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear nodes: %w", err)
		}
		file := SourceFile{
			Path:      path,
			Language:  tree.Language,
			Contents:  string(tree.File.Content),
			NodeCount: len(rows),
			IndexedAt: time.Now().UTC(),
		}
		if err := tx.Save(&file).Error; err != nil {
			return fmt.Errorf("failed to save source file: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert nodes: %w", err)
		}
		return nil
	})
}

func flatten(path string, kinds syntax.KindTable, root *common.Node) []NodeRow {
	type frame struct {
		node       *common.Node
		parent     *int
		childIndex int
		depth      int
	}
	var rows []NodeRow
	var stack common.Stack[frame]
	stack.Push(frame{node: root})
	for stack.Len() > 0 {
		f, _ := stack.Pop()
		seq := len(rows)
		row := NodeRow{
			Path:       path,
			Seq:        seq,
			ParentSeq:  f.parent,
			ChildIndex: f.childIndex,
			Depth:      f.depth,
			Kind:       int(f.node.Kind),
			KindName:   f.node.KindName,
			Content:    f.node.Content,
		}
		if row.KindName == "" && kinds != nil {
			row.KindName = kinds.KindName(f.node.Kind)
		}
		if f.node.Pos != nil {
			line, column := f.node.Pos.Line, f.node.Pos.Column
			row.Line, row.Column = &line, &column
		}
		rows = append(rows, row)
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack.Push(frame{node: f.node.Children[i], parent: &seq, childIndex: i, depth: f.depth + 1})
		}
	}
	return rows
}

// Nodes returns the indexed nodes of path in document order.
func (ix *Index) Nodes(path string) ([]NodeRow, error) {
	var rows []NodeRow
	err := ix.db.Where("path = ?", path).Order("seq").Find(&rows).Error
	return rows, err
}

// NodesOfKind returns the nodes of path with the given kind name.
func (ix *Index) NodesOfKind(path, kindName string) ([]NodeRow, error) {
	var rows []NodeRow
	err := ix.db.Where("path = ? AND kind_name = ?", path, kindName).Order("seq").Find(&rows).Error
	return rows, err
}

// LeafText concatenates the leaf contents of path in document order.
func (ix *Index) LeafText(path string) (string, error) {
	var contents []string
	err := ix.db.Model(&NodeRow{}).
		Where("path = ? AND content IS NOT NULL", path).
		Order("seq").
		Pluck("content", &contents).Error
	if err != nil {
		return "", err
	}
	return strings.Join(contents, ""), nil
}

// SourceFile returns the stored file record for path.
func (ix *Index) SourceFile(path string) (*SourceFile, error) {
	var file SourceFile
	if err := ix.db.First(&file, "path = ?", path).Error; err != nil {
		return nil, err
	}
	return &file, nil
}
