package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/auth"
	sc "github.com/dmitrijs2005/uptask/internal/server/config"
	"github.com/dmitrijs2005/uptask/internal/server/models"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/repomanager"
)

// ExportURLValidity is how long a download link returned by ExportProject works.
const ExportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ProjectExport is the JSON document written for an exported project.
type ProjectExport struct {
	ID         string       `json:"id"`
	Name       string       `json:"nombre"`
	Owner      string       `json:"creador"`
	CreatedAt  time.Time    `json:"creado"`
	ExportedAt time.Time    `json:"exportado"`
	Tasks      []TaskExport `json:"tareas"`
}

type TaskExport struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Completed bool      `json:"estado"`
	CreatedAt time.Time `json:"creado"`
}

// ExportService snapshots a project with its tasks into object storage.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewExportService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		now:         time.Now,
	}
}

// ExportKey is the object key of an export of project taken at t.
func ExportKey(ownerID, projectID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%s/%s.json", ownerID, projectID, t.UTC().Format("20060102T150405Z"))
}

func (s *ExportService) getS3Clients() (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// snapshot reads the project id and its tasks in one transaction.
func (s *ExportService) snapshot(ctx context.Context, owner auth.Identity, id string) (*ProjectExport, error) {
	var doc *ProjectExport
	find := func(ctx context.Context, tx dbx.DBTX, id string) (*models.Project, error) {
		return s.repomanager.Projects(tx).Find(ctx, id)
	}
	err := withOwned(ctx, s.repomanager, owner, id, ErrProjectNotFound, find,
		func(ctx context.Context, tx dbx.DBTX, p *models.Project) error {
			tasks, err := s.repomanager.Tasks(tx).ListByOwnerAndProject(ctx, owner.ID, p.ID)
			if err != nil {
				return err
			}
			doc = &ProjectExport{
				ID:        p.ID,
				Name:      p.Name,
				Owner:     p.OwnerID,
				CreatedAt: p.CreatedAt,
				Tasks:     make([]TaskExport, 0, len(tasks)),
			}
			for _, t := range tasks {
				doc.Tasks = append(doc.Tasks, TaskExport{ID: t.ID, Name: t.Name, Completed: t.Completed, CreatedAt: t.CreatedAt})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ExportProject uploads a JSON snapshot of the project id and returns a
// presigned download URL. Only the owner may export a project.
func (s *ExportService) ExportProject(ctx context.Context, owner auth.Identity, id string) (string, error) {
	doc, err := s.snapshot(ctx, owner, id)
	if err != nil {
		return "", err
	}

	now := s.now()
	doc.ExportedAt = now
	body, err := json.Marshal(doc)
	if err != nil {
		return "", internalError("marshal export", err)
	}

	client, presignClient, err := s.getS3Clients()
	if err != nil {
		return "", internalError("s3 config", err)
	}

	bucket := s.config.S3Bucket
	key := ExportKey(owner.ID, doc.ID, now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", internalError("upload export", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportURLValidity))
	if err != nil {
		return "", internalError("presign export", err)
	}

	return req.URL, nil
}
