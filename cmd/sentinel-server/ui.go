package main

import "net/http"

// handleUI serves a small debug page for exercising /api/extract and
// /api/mask without a separate frontend.
func handleUI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(uiHTML))
}

const uiHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>sentinel</title>
<style>
  :root {
    --bg: #0f1115; --fg: #e6e6e6; --dim: #8a8f98; --accent: #4cc2ff;
    --c-person: #d37be0; --c-email: #4cc2ff; --c-phone: #e0c24c;
    --c-credit_card: #e05c5c; --c-iban: #5ce0a0; --c-ip: #e0c24c;
    --c-url: #4cc2ff; --c-domain: #4cc2ff; --c-saudi_id: #5ce0a0;
    --c-financial: #e05c5c; --c-ssn: #5ce0a0; --c-custom: #e05c5c;
  }
  @media (prefers-color-scheme: light) {
    :root { --bg: #fafafa; --fg: #1a1a1a; --dim: #666; }
  }
  body { background: var(--bg); color: var(--fg); font-family: ui-monospace, monospace; margin: 2rem; }
  textarea { width: 100%; height: 8rem; background: transparent; color: var(--fg); border: 1px solid var(--dim); padding: .5rem; }
  button { background: var(--accent); color: #000; border: none; padding: .5rem 1rem; cursor: pointer; margin-top: .5rem; }
  pre { white-space: pre-wrap; word-break: break-word; border: 1px solid var(--dim); padding: .5rem; }
  mark { background: transparent; padding: 0 .15rem; border-radius: .2rem; }
  .legend span { margin-right: 1rem; }
</style>
</head>
<body>
  <h1>sentinel</h1>
  <p class="dim">Paste text, extract detections, then mask them.</p>
  <textarea id="input" placeholder="Paste text here..."></textarea>
  <div>
    <button onclick="extract()">Extract</button>
    <button onclick="mask()">Mask</button>
  </div>
  <h3>Detections</h3>
  <pre id="annotated"></pre>
  <h3>Redacted</h3>
  <pre id="redacted"></pre>

<script>
let lastDetections = [];

async function extract() {
  const text = document.getElementById('input').value;
  const res = await fetch('/api/extract', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({text}),
  });
  const data = await res.json();
  lastDetections = data.detections || [];
  render(text, lastDetections);
}

async function mask() {
  const text = document.getElementById('input').value;
  const res = await fetch('/api/mask', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({text, detections: lastDetections}),
  });
  const data = await res.json();
  document.getElementById('redacted').textContent = data.redacted_text || '';
}

function render(text, detections) {
  const sorted = [...detections].sort((a, b) => a.start - b.start);
  let out = '';
  let last = 0;
  for (const d of sorted) {
    if (d.start < last) continue;
    out += escapeHTML(text.slice(last, d.start));
    out += '<mark style="color:var(--c-' + d.kind + ')">' + escapeHTML(text.slice(d.start, d.end)) + '</mark>';
    last = d.end;
  }
  out += escapeHTML(text.slice(last));
  document.getElementById('annotated').innerHTML = out;
}

function escapeHTML(s) {
  return s.replace(/[&<>]/g, c => ({'&':'&amp;','<':'&lt;','>':'&gt;'}[c]));
}
</script>
</body>
</html>`
