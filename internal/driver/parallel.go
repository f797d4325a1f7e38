package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"charj/internal/ast"
	"charj/internal/diag"
	"charj/internal/observ"
	"charj/internal/source"
	"charj/internal/trace"
)

// SourceExt is the extension of Charj source files.
const SourceExt = ".charj"

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в общем FileSet
	Tree   *ast.File     // nil, если файл не удалось загрузить
	Bag    *diag.Bag
	Timer  *observ.Timer
}

// DirResult is the outcome of ParseDir. Files are sorted by path.
type DirResult struct {
	FileSet *source.FileSet
	Files   []ParseDirResult
}

// DirSummary aggregates a directory run for the CLI summary table.
type DirSummary struct {
	Files           int
	FilesWithErrors int
	Diagnostics     int
	Errors          int
}

func (r *DirResult) Summary() DirSummary {
	s := DirSummary{Files: len(r.Files)}
	for _, f := range r.Files {
		if f.Bag == nil {
			continue
		}
		s.Diagnostics += f.Bag.Len()
		errs := len(lo.Filter(f.Bag.Items(), func(d diag.Diagnostic, _ int) bool { return d.Severity == diag.SevError }))
		s.Errors += errs
		if errs > 0 {
			s.FilesWithErrors++
		}
	}
	return s
}

// Bag merges the per-file bags in file order. File IDs follow path order, so
// the result is already sorted.
func (r *DirResult) Bag() *diag.Bag {
	merged := diag.NewBag(0)
	for _, f := range r.Files {
		merged.Merge(f.Bag)
	}
	return merged
}

// listSourceFiles возвращает отсортированный список всех *.charj файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все *.charj файлы в директории параллельно.
//
// Файлы загружаются последовательно, затем каждый разбирается в своей
// горутине со своими лексером, парсером и Bag. Ошибка загрузки файла
// превращается в диагностику IO4001, остальные файлы продолжают обрабатываться.
// Отмена ctx проверяется только между файлами.
func ParseDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	result := &DirResult{FileSet: fileSet, Files: make([]ParseDirResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "parse_dir")
	defer func() { span.WithExtra("files", strconv.Itoa(len(files))).End(dir) }()

	// Загрузка последовательная: FileSet не потокобезопасен на запись.
	loadErrors := make(map[int]error, len(files))
	for i, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл даёт диагностике корректный Span
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
		}
		result.Files[i] = ParseDirResult{Path: path, FileID: fileID}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// индекс i уникален для горутины, мьютекс не нужен
			res := &result.Files[i]
			res.Bag = diag.NewBag(opts.maxDiagnostics())
			res.Timer = observ.NewTimer()
			file := fileSet.Get(res.FileID)

			if loadErr, failed := loadErrors[i]; failed {
				res.Bag.Add(diag.NewError(
					diag.IOLoadFileError,
					file.Span(),
					"failed to load file: "+loadErr.Error(),
				))
				return nil
			}

			fileSpan, fctx := trace.BeginCtx(gctx, trace.ScopeModule, "file:"+res.Path)
			parsed, err := runFrontEnd(fctx, res.Timer, file, res.Bag, opts)
			fileSpan.End(strconv.Itoa(res.Bag.Len()) + " diagnostics")
			if err != nil {
				return err
			}
			res.Tree = parsed.File
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}
