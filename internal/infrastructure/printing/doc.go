// Package printing lays out the printable catalog sheet on top of go-pdf/fpdf.
//
// This package contains:
// - Surface, the subset of *fpdf.Fpdf the layout needs, and NewSurface
// - Engine, which owns the layout cursor, page breaks and card drawing
// - Theme and Geometry, the colours and millimetre constants of the sheet
// - RenderError for fatal layout failures
//
// Example usage:
//
//	surface := printing.NewSurface(printing.DocumentInfo{Title: "Catálogo"})
//	engine := printing.NewEngine(surface, printing.WithLogger(logger))
//	if err := engine.BeginDocument(); err != nil {
//	    return err
//	}
//	plan, err := engine.PlanVariants(item)
//	if err != nil {
//	    return err
//	}
//	height := engine.ComputeRowHeight(&plan, nil)
//	if _, err := engine.EnsureRowSpace(height); err != nil {
//	    return err
//	}
//	if err := engine.DrawCard(item, 0, height, plan, image); err != nil {
//	    return err
//	}
//	engine.AdvanceRow(height)
//	if err := engine.DrawFooter(printing.DefaultFooter(time.Now())); err != nil {
//	    return err
//	}
//	pages, err := engine.Finish(&buf)
package printing
