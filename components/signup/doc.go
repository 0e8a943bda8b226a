// Package signup provides a small net/http handler serving a configured list
// editor page.
//
// GET and HEAD render the page. POST decodes the posted rows: an add/remove
// button press re-renders the page with the edit applied, while a final
// submit serializes every widget, validates the payloads and answers with a
// JSON document holding the payloads and the validation results.
package signup
