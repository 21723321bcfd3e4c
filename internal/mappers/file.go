package mappers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"
)

// FilePart is the multipart field carrying the uploaded file.
const FilePart = "file"

// File maps an uploaded article file. A file with a parent supersedes it and
// is threaded into the parent's history; a galley file also gets a galley.
func File(env *Env) *transport.Definition[gormModels.File] {
	return &transport.Definition[gormModels.File]{
		Name: "File",
		Fields: []transport.Field{
			{Name: "label", Type: transport.String, MaxLength: 1000},
			{Name: "description", Type: transport.Text},
			{Name: "sequence", Type: transport.Integer},
			{Name: "kind", Type: transport.String},
			{Name: "is_galley", Type: transport.Boolean},
			{Name: "galley_type", Type: transport.String},
			{Name: "original_filename", Type: transport.String},
			{Name: "mime_type", Type: transport.String},
			{Name: "date_uploaded", Type: transport.DateTime},
			{Name: "date_modified", Type: transport.DateTime},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "parent", Attr: "parent_id", Target: "File"},
			{Field: "owner", Attr: "owner_id", Target: "Account"},
		},
		Defaults: []transport.Default{
			{Field: "sequence", Value: 1},
			{Field: "date_uploaded", Func: func(c *transport.Context, _ transport.Payload) (any, error) { return c.Now, nil }},
			{Field: "date_modified", Func: func(c *transport.Context, _ transport.Payload) (any, error) { return c.Now, nil }},
		},
		Parents:    articleParent,
		ParentKeys: articleOnly,

		Attachments: []transport.Attachment[gormModels.File]{{
			Part:     FilePart,
			Required: true,
			Bind: func(c *transport.Context, file *gormModels.File, upload *transport.Upload, _ transport.Payload) error {
				if env.Files == nil {
					return fmt.Errorf("no file store configured")
				}
				dir := storage.ArticleDir(derefID(file.ArticleID))
				name, rel, err := env.Files.Save(dir, upload.Filename, upload.Data)
				if err != nil {
					return err
				}

				file.UUIDFilename, file.Path = name, rel
				if file.OriginalFilename == "" {
					file.OriginalFilename = upload.Filename
				}
				if file.MimeType == "" {
					file.MimeType = mimeTypeOf(upload)
				}
				return c.Tx().Model(file).Updates(map[string]any{
					"uuid_filename":     file.UUIDFilename,
					"path":              file.Path,
					"original_filename": file.OriginalFilename,
					"mime_type":         file.MimeType,
				}).Error
			},
		}},

		PostProcess: func(c *transport.Context, file *gormModels.File, data transport.Payload) error {
			if file.ParentID != nil {
				if err := threadHistory(c, *file.ParentID, file.ID); err != nil {
					return err
				}
			}
			if file.IsGalley && file.ArticleID != nil {
				return createGalley(c, file, data)
			}
			return nil
		},
	}
}

func threadHistory(c *transport.Context, parentID, fileID uint) error {
	var count int64
	if err := c.Tx().Model(&gormModels.FileHistory{}).Where("file_id = ?", parentID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to read file history: %w", err)
	}
	entry := gormModels.FileHistory{FileID: parentID, HistoryFileID: fileID}
	if err := c.Tx().Where(entry).Attrs(gormModels.FileHistory{Sequence: int(count) + 1}).FirstOrCreate(&entry).Error; err != nil {
		return fmt.Errorf("failed to thread file %d onto %d: %w", fileID, parentID, err)
	}
	return nil
}

func createGalley(c *transport.Context, file *gormModels.File, data transport.Payload) error {
	kind := data.String("galley_type")
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(file.OriginalFilename)), ".")
	}
	label := file.Label
	if label == "" {
		label = strings.ToUpper(kind)
	}

	galley := gormModels.Galley{FileID: file.ID}
	attrs := gormModels.Galley{ArticleID: *file.ArticleID, Label: label, Type: kind, Sequence: file.Sequence}
	if err := c.Tx().Where(galley).Attrs(attrs).FirstOrCreate(&galley).Error; err != nil {
		return fmt.Errorf("failed to create galley: %w", err)
	}
	return nil
}

func mimeTypeOf(upload *transport.Upload) string {
	if upload.ContentType != "" && upload.ContentType != "application/octet-stream" {
		return upload.ContentType
	}
	return http.DetectContentType(upload.Data)
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
