// Package inspekt is the Composition Root of the field inspection pipeline.
//
// A technician captures a photo, fills in a short form (name, description,
// location, category) and commits both as one capture record in a flat
// storage directory:
//
//	photo_<createdAt>.jpg
//	metadata_<createdAt>.json
//
// Exporting selects the most recent valid record, compiles it into a
// single-page report (HTML, or PDF via headless Chrome), persists the report
// next to the record without ever overwriting a file, and hands it to the
// share surface when one exists.
//
// Usage:
//
//	svc, err := inspekt.New("./captures",
//		inspekt.WithLocale("nl"),
//		inspekt.WithLogger(logger),
//	)
//
//	rec, err := svc.Capture(ctx, capture.NewFile("camera.jpg"), inspekt.FormState{
//		TechnicianName: "Jan",
//		Category:       core.CategoryGroundCables,
//	})
//
//	res, err := svc.Export(ctx)
package inspekt
