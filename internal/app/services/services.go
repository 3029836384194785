// Package services holds the business rules of the student management system.
//
// Services defined in this package:
//   - StudentService: student lifecycle, search, detail and the academic summary
//   - GradeService: grade entry, letter derivation, transcripts and course statistics
//   - CatalogService: majors and courses
//   - ReportService: spreadsheet exports built on the services above
//
// Write operations return a dto.OperationResult together with an *apperrors.CustomError,
// so callers can render the result as is and branch on the error class.
package services
