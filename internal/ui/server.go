// Package ui provides a browser console for sending action scripts to the server.
package ui

import (
	"html/template"
	"log"
	"net/http"
	"os/exec"
	"runtime"
)

// Handler serves the console page. The page itself needs no token; it sends
// the token the user enters with every API request.
func Handler(backend string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, struct{ Backend string }{backend}); err != nil {
			log.Printf("UI: Failed to render console: %v", err)
		}
	})
}

// OpenBrowser opens url in the default browser
func OpenBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = exec.Command("open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("UI: Failed to open browser: %v", err)
	}
}

var tmpl = template.Must(template.New("console").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>FakeInput Console</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
            color: #e2e8f0;
            min-height: 100vh;
            padding: 2rem;
        }
        .container { max-width: 900px; margin: 0 auto; }
        h1 { font-size: 1.75rem; margin-bottom: 1.5rem; color: #a5b4fc; }
        .card {
            background: rgba(255,255,255,0.05);
            border: 1px solid rgba(255,255,255,0.1);
            border-radius: 16px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        label { display: block; font-size: 0.85rem; color: #94a3b8; margin-bottom: 0.35rem; }
        input, textarea {
            width: 100%;
            background: rgba(0,0,0,0.25);
            border: 1px solid rgba(255,255,255,0.15);
            border-radius: 8px;
            color: #e2e8f0;
            padding: 0.6rem;
            font-family: ui-monospace, monospace;
            margin-bottom: 1rem;
        }
        textarea { min-height: 12rem; }
        button {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            border: none;
            border-radius: 8px;
            color: white;
            padding: 0.6rem 1.4rem;
            cursor: pointer;
            margin-right: 0.5rem;
        }
        pre { white-space: pre-wrap; font-size: 0.85rem; color: #cbd5e1; }
    </style>
</head>
<body>
<div class="container">
    <h1>FakeInput Console <small>({{.Backend}})</small></h1>
    <div class="card">
        <label for="token">Token</label>
        <input id="token" type="password" autocomplete="off">
        <label for="script">Script</label>
        <textarea id="script" spellcheck="false"># one action per line
tap Return</textarea>
        <button onclick="runScript()">Run</button>
        <button onclick="loadKeys()">Keys</button>
    </div>
    <div class="card"><pre id="output"></pre></div>
</div>
<script>
function headers() {
    const h = {'Content-Type': 'application/json'};
    const token = document.getElementById('token').value;
    if (token) h['Authorization'] = 'Bearer ' + token;
    return h;
}
async function show(resp) {
    document.getElementById('output').textContent = resp.status + ' ' + await resp.text();
}
async function runScript() {
    const script = document.getElementById('script').value;
    await show(await fetch('/api/actions', {
        method: 'POST',
        headers: headers(),
        body: JSON.stringify({id: 'console-' + Date.now(), script: script})
    }));
}
async function loadKeys() {
    await show(await fetch('/api/keys', {headers: headers()}));
}
</script>
</body>
</html>
`))
