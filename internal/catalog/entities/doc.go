// Package entities defines the GORM row models for the Capture One catalog schema.
//
// The catalog is a Core Data store: every logical table carries a Z_PK primary
// key and a Z_ENT column holding the numeric entity type. Several logical
// kinds can share one physical table, so rows are always filtered by Z_ENT.
//
// # Metadata Tables
//
//   - VersionInfo: catalog generation (ZVERSIONINFO)
//   - Entity: entity type registry (ZENTITIES)
//   - DocumentContent: root collection pointer (ZDOCUMENTCONTENT)
//
// # Object Tables
//
//   - Keyword: keyword hierarchy as parent pointers (ZKEYWORD)
//   - PathLocation: folders (ZPATHLOCATION)
//   - Image: image records (ZIMAGE)
//   - Stack: stacks of images with a pick (ZSTACK)
//   - StackImageLink: stack membership (ZSTACKIMAGELINK)
//   - Collection: polymorphic collections (ZCOLLECTION)
//
// Columns are bound by name through gorm column tags. Required columns use
// the database/sql Null types so a NULL can be reported as a decode failure;
// optional columns use the lenient types in nullable.go.
package entities
