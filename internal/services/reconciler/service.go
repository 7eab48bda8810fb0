package reconciler

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"boleto-management-backend/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	boletos   *repository.BoletoRepository
	extractor TextExtractor
	workDir   string
	log       *zap.Logger
}

func NewService(
	boletos *repository.BoletoRepository,
	extractor TextExtractor,
	workDir string,
	log *zap.Logger,
) *Service {
	return &Service{boletos: boletos, extractor: extractor, workDir: workDir, log: log}
}

// Result is the packaged reconciliation output, annotated for transport as a
// downloadable attachment.
type Result struct {
	Zip         []byte
	Filename    string
	ContentType string
}

// Reconcile extracts holder names from the document, matches them against
// stored boletos, regenerates one PDF per matched boleto and packages
// everything into a zip. uploadPath is the uploaded document on disk; it and
// every per-boleto PDF written under workDir are removed on every exit path.
func (s *Service) Reconcile(data []byte, uploadPath string) (*Result, error) {
	var gerados []string
	defer func() {
		s.removeArtifact(uploadPath)
		for _, p := range gerados {
			s.removeArtifact(p)
		}
	}()

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("extracting document text: %w", err)
	}

	nomes := CandidateNames(text)
	encontrados, err := s.boletos.FindBySacadoNames(nomes)
	if err != nil {
		return nil, fmt.Errorf("matching boletos: %w", err)
	}

	if err := os.MkdirAll(s.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, boleto := range encontrados {
		entry := boleto.ID.String() + ".pdf"

		conteudo, err := renderBoletoPDF(boleto)
		if err != nil {
			zw.Close()
			return nil, err
		}

		caminho := filepath.Join(s.workDir, entry)
		if err := os.WriteFile(caminho, conteudo, 0o644); err != nil {
			zw.Close()
			return nil, fmt.Errorf("writing temporary pdf: %w", err)
		}
		gerados = append(gerados, caminho)

		w, err := zw.Create(entry)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("adding zip entry: %w", err)
		}
		if _, err := w.Write(conteudo); err != nil {
			zw.Close()
			return nil, fmt.Errorf("writing zip entry: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip: %w", err)
	}

	return &Result{
		Zip:         buf.Bytes(),
		Filename:    "boletos.zip",
		ContentType: "application/zip",
	}, nil
}

// removeArtifact deletes a temporary file. A file already gone only means an
// earlier step cleaned it up, so it is logged and never fails the pipeline.
func (s *Service) removeArtifact(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("temporary artifact not found at cleanup", zap.String("path", path))
		} else {
			s.log.Error("removing temporary artifact", zap.String("path", path), zap.Error(err))
		}
	}
}
