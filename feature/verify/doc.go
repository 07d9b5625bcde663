// Package verify scans an exported gallery tree for integrity: every
// photo and thumbnail a children.json listing references must exist on
// disk or in the storage bucket. Findings are written as the Markdown
// mismatch report the repair tool takes as input, closing the loop
// between export and repair.
package verify
