package ui

import (
	"fmt"
	"html/template"
	"io"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"pageURL": pageURL,
	"editURL": func(page int, id string) string {
		return fmt.Sprintf("/?page=%d&edit=%s", page, template.URLQueryEscaper(id))
	},
	"createURL": func(page int) string {
		return fmt.Sprintf("/?page=%d&dialog=create", page)
	},
}

// renderTemplate renders a page template inside the layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(templates["layout"])
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	if _, err := tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}
	for _, comp := range components {
		if _, err := tmpl.New("component/" + comp).Parse(templates[comp]); err != nil {
			return fmt.Errorf("parse component %s: %w", comp, err)
		}
	}

	return tmpl.Execute(w, data)
}

var components = []string{"notices", "pager", "dialog"}

var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    <main class="max-w-5xl mx-auto py-6 px-4">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"notices": `{{define "notices"}}
{{range .}}
<div role="alert" class="mb-4 rounded-md bg-red-50 p-4 text-sm text-red-700">{{.}}</div>
{{end}}
{{end}}`,

	"pager": `{{define "pager"}}
{{if .Show}}
<nav class="mt-6 flex items-center justify-center gap-4" aria-label="Pagination">
    {{if .PrevDisabled}}
    <span class="px-3 py-1 rounded border text-gray-400 cursor-not-allowed">Previous</span>
    {{else}}
    <a href="{{pageURL .PrevPage}}" class="px-3 py-1 rounded border bg-white hover:bg-gray-100">Previous</a>
    {{end}}
    <span class="text-sm text-gray-600">{{.Label}}</span>
    {{if .NextDisabled}}
    <span class="px-3 py-1 rounded border text-gray-400 cursor-not-allowed">Next</span>
    {{else}}
    <a href="{{pageURL .NextPage}}" class="px-3 py-1 rounded border bg-white hover:bg-gray-100">Next</a>
    {{end}}
</nav>
{{end}}
{{end}}`,

	"dialog": `{{define "dialog"}}
{{if .Dialog.Open}}
<div class="fixed inset-0 z-10 flex items-center justify-center" role="dialog" aria-modal="true">
    <a href="{{pageURL .Page}}" data-dialog-close class="absolute inset-0 bg-black bg-opacity-50" aria-label="Close"
       {{if .Dialog.Submitting}}aria-disabled="true" style="pointer-events: none"{{end}}></a>
    <div class="relative bg-white rounded-lg shadow-xl w-full max-w-2xl p-6">
        <h2 class="text-xl font-semibold mb-4">{{.Dialog.Title}}</h2>
        {{if .Dialog.Error}}
        <div role="alert" class="mb-4 rounded-md bg-red-50 p-3 text-sm text-red-700">{{.Dialog.Error}}</div>
        {{end}}
        <form action="/settings/save" method="POST"
              onsubmit="var b = this.querySelector('button[type=submit]'); b.disabled = true; b.textContent = 'Saving...';
                        this.closest('[role=dialog]').querySelectorAll('[data-dialog-close]').forEach(function (a) {
                            a.setAttribute('aria-disabled', 'true'); a.style.pointerEvents = 'none';
                        });">
            <input type="hidden" name="page" value="{{.Page}}">
            {{with .Dialog.Target}}<input type="hidden" name="id" value="{{.ID}}">{{end}}
            <label for="buffer" class="block text-sm font-medium text-gray-700 mb-1">JSON Data:</label>
            <textarea id="buffer" name="buffer" rows="15" placeholder='{"key": "value"}'
                      class="w-full font-mono text-sm border rounded p-2"
                      {{if .Dialog.Submitting}}disabled{{end}}>{{.Dialog.Buffer}}</textarea>
            <div class="mt-4 flex justify-end gap-2">
                <a href="{{pageURL .Page}}" data-dialog-close class="px-4 py-2 rounded border"
                   {{if .Dialog.Submitting}}aria-disabled="true" style="pointer-events: none"{{end}}>Cancel</a>
                <button type="submit" class="px-4 py-2 rounded bg-blue-600 text-white hover:bg-blue-700"
                        {{if .Dialog.Submitting}}disabled{{end}}>{{.Dialog.SubmitLabel}}</button>
            </div>
        </form>
    </div>
</div>
{{end}}
{{end}}`,

	"index": `{{define "content"}}
<div class="flex items-center justify-between mb-6">
    <h1 class="text-2xl font-bold text-gray-900">Settings Management System</h1>
    <a href="{{createURL .Page}}" class="px-4 py-2 rounded bg-blue-600 text-white hover:bg-blue-700">+ Create Setting</a>
</div>

{{template "notices" .Notices}}

{{if .View.Loading}}
<p class="text-center text-gray-500">Loading...</p>
{{else if .View.Empty}}
<p class="text-center text-gray-500 py-12">{{.View.EmptyMessage}}</p>
{{else}}
<ul class="space-y-4">
    {{range .View.Rows}}
    <li class="bg-white shadow rounded-lg p-4" data-id="{{.ID}}">
        <div class="flex justify-between items-start">
            <div class="text-xs text-gray-500">
                <div>ID: <code>{{.ID}}</code></div>
                <div>Created: <span title="{{.CreatedAgo}}">{{.Created}}</span></div>
                <div>Updated: <span title="{{.UpdatedAgo}}">{{.Updated}}</span></div>
            </div>
            <div class="flex gap-2">
                <a href="{{editURL $.Page .ID}}" class="px-3 py-1 rounded border text-sm hover:bg-gray-100">Edit</a>
                <form action="/settings/{{.ID}}/delete" method="POST"
                      onsubmit="if (!confirm({{$.DeletePrompt}})) { return false; } this.elements.confirm.value = 'yes'; return true;">
                    <input type="hidden" name="page" value="{{$.Page}}">
                    <input type="hidden" name="confirm" value="">
                    <button type="submit" class="px-3 py-1 rounded border text-sm text-red-600 hover:bg-red-50">Delete</button>
                </form>
            </div>
        </div>
        <pre class="mt-3 bg-gray-50 rounded p-3 text-sm overflow-x-auto">{{.Data}}</pre>
    </li>
    {{end}}
</ul>
{{end}}

{{template "pager" .View.Pager}}
{{template "dialog" .}}
{{end}}`,

	"confirm": `{{define "content"}}
<div class="bg-white shadow rounded-lg p-6 max-w-md mx-auto">
    <p class="mb-4">{{.Prompt}}</p>
    <form action="/settings/{{.ID}}/delete" method="POST" class="flex justify-end gap-2">
        <input type="hidden" name="page" value="{{.Page}}">
        <input type="hidden" name="confirm" value="yes">
        <a href="{{pageURL .Page}}" class="px-4 py-2 rounded border">Cancel</a>
        <button type="submit" class="px-4 py-2 rounded bg-red-600 text-white">OK</button>
    </form>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="rounded-md bg-red-50 p-4">
    <h1 class="text-lg font-medium text-red-800">{{.Title}}</h1>
    <p class="mt-2 text-sm text-red-700">{{.Message}}</p>
    <a href="/" class="mt-4 inline-block text-sm text-red-800 underline">Back to settings</a>
</div>
{{end}}`,
}
