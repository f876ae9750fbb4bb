package services

import (
	"fmt"
	"io"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetIndicadores   = "Indicadores"
	SheetMunicipios    = "Municipios"
	SheetSemanas       = "Semanas"
	SheetClassificacao = "Classificacao"
	SheetFiltros       = "Filtros"
)

// ExportFileName is the attachment name of the exported workbook
const ExportFileName = "painel_dengue.xlsx"

// ExportWorkbook writes result as an XLSX workbook
func ExportWorkbook(w io.Writer, result *models.DashboardResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetIndicadores); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMunicipios, SheetSemanas, SheetClassificacao, SheetFiltros} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2C3E50"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	ind := result.Indicadores
	indicadores := [][]interface{}{
		{"Casos Totais", ind.CasosTotais},
		{"Hospitalizações", ind.Hospitalizacoes},
		{"Óbitos", ind.Obitos},
		{"Registros no conjunto de dados", result.TotalRegistros},
	}
	if err := writeTable(f, SheetIndicadores, header, []string{"Indicador", "Valor"}, indicadores); err != nil {
		return err
	}

	municipios := make([][]interface{}, 0, len(result.TopMunicipios))
	for _, c := range result.TopMunicipios {
		municipios = append(municipios, []interface{}{c.Label, c.Casos})
	}
	if err := writeTable(f, SheetMunicipios, header, []string{"Município", "Casos"}, municipios); err != nil {
		return err
	}

	semanas := make([][]interface{}, 0, len(result.CasosPorSemana))
	for _, s := range result.CasosPorSemana {
		semanas = append(semanas, []interface{}{s.Semana, s.Casos})
	}
	if err := writeTable(f, SheetSemanas, header, []string{"Semana", "Casos"}, semanas); err != nil {
		return err
	}

	classificacao := make([][]interface{}, 0, len(result.Classificacao))
	for _, c := range result.Classificacao {
		classificacao = append(classificacao, []interface{}{c.Label, c.Casos})
	}
	if err := writeTable(f, SheetClassificacao, header, []string{"Classificação", "Casos"}, classificacao); err != nil {
		return err
	}

	if err := writeTable(f, SheetFiltros, header, []string{"Filtro", "Valor"}, filterRows(result.Filtros)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return err
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
		}
	}
	return nil
}

// filterRows describes every filter with its label; unset filters read "Todos"
func filterRows(f models.DashboardFilters) [][]interface{} {
	todos := "Todos"
	label := func(s string) string {
		if s == "" {
			return todos
		}
		return s
	}
	code := func(t models.TabelaCodigos, v *int) string {
		if v == nil {
			return todos
		}
		return t.Label(v)
	}
	date := func(v *time.Time) string {
		if v == nil {
			return todos
		}
		return v.Format("02/01/2006")
	}

	sexo := todos
	for _, o := range models.SexoOptions {
		if o.Value == f.Sexo {
			sexo = o.Label
		}
	}
	faixa := todos
	if fe, err := models.BuscarFaixaEtaria(f.FaixaEtaria); err == nil {
		faixa = fe.Rotulo
	}

	return [][]interface{}{
		{"Sexo", sexo},
		{"Faixa Etária", faixa},
		{"Município", label(f.Municipio)},
		{"Evolução", code(models.Evolucoes, f.Evolucao)},
		{"Classificação Final", code(models.Classificacoes, f.Classificacao)},
		{"Hospitalizado", code(models.Hospitalizacoes, f.Hospitalizado)},
		{"Raça/Cor", code(models.Racas, f.Raca)},
		{"Gestante", code(models.Gestantes, f.Gestante)},
		{"Data inicial", date(f.DataInicio)},
		{"Data final", date(f.DataFim)},
	}
}
