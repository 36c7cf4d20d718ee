package handlers

import "net/http"

// indexHTML is the whole demo UI: one form posting to /v1/compose, result
// panels for status, preview, base64 and metadata.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>Influencer + Product Composer</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>
      body { font-family: system-ui, sans-serif; background: #f7f7f8; margin: 0; }
      .container { max-width: 900px; margin: auto; padding: 24px; }
      h1 { font-size: 1.4rem; }
      form, .panel { background: #fff; border: 1px solid #e2e2e6; border-radius: 8px; padding: 16px; margin-bottom: 16px; }
      label { display: block; font-weight: 600; margin: 12px 0 4px; }
      input[type=text], input[type=password], textarea { width: 100%; box-sizing: border-box; padding: 8px; border: 1px solid #ccc; border-radius: 4px; }
      .row { display: flex; gap: 16px; }
      .row > div { flex: 1; }
      button { margin-top: 16px; padding: 10px 24px; border: 0; border-radius: 6px; background: #1a73e8; color: #fff; font-size: 1rem; cursor: pointer; }
      button:disabled { background: #9bb9e8; }
      img#preview { max-width: 100%; display: none; }
      pre, textarea[readonly] { background: #f1f3f4; font-size: 0.8rem; overflow: auto; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>Influencer + Product Composer</h1>
      <form id="compose-form">
        <label for="api_key">Google API Key</label>
        <input type="password" id="api_key" name="api_key" placeholder="x-goog-api-key (optional if configured server-side)" />
        <label for="prompt">Prompt</label>
        <textarea id="prompt" name="prompt" rows="2" placeholder="Describe the product placement idea..."></textarea>
        <div class="row">
          <div>
            <label for="influencer">Influencer Image</label>
            <input type="file" id="influencer" name="influencer" accept="image/*" required />
          </div>
          <div>
            <label for="product">Product Image</label>
            <input type="file" id="product" name="product" accept="image/*" required />
          </div>
        </div>
        <button type="submit" id="submit-btn">Generate</button>
      </form>
      <div class="panel">
        <label>Status</label>
        <div id="status">&mdash;</div>
      </div>
      <div class="panel">
        <label>Preview (JPEG)</label>
        <img id="preview" alt="generated preview" />
      </div>
      <div class="panel">
        <label>Base64 (JPEG)</label>
        <textarea id="b64" rows="6" readonly></textarea>
      </div>
      <div class="panel">
        <label>Metadata</label>
        <pre id="metadata">{}</pre>
      </div>
    </div>
    <script>
      const form = document.getElementById('compose-form');
      const btn = document.getElementById('submit-btn');
      form.addEventListener('submit', async (ev) => {
        ev.preventDefault();
        btn.disabled = true;
        document.getElementById('status').textContent = 'Generating...';
        try {
          const resp = await fetch('/v1/compose', { method: 'POST', body: new FormData(form) });
          const data = await resp.json();
          document.getElementById('status').textContent = data.message || data.error || 'unexpected response';
          const img = document.getElementById('preview');
          if (data.ok && data.image_base64) {
            img.src = 'data:image/jpeg;base64,' + data.image_base64;
            img.style.display = 'block';
          } else {
            img.style.display = 'none';
          }
          document.getElementById('b64').value = data.image_base64 || '';
          document.getElementById('metadata').textContent =
            JSON.stringify(data.metadata || {}, null, 2) + (data.diagnostic ? '\n' + data.diagnostic : '');
        } catch (err) {
          document.getElementById('status').textContent = 'Request failed: ' + err;
        } finally {
          btn.disabled = false;
        }
      });
    </script>
  </body>
</html>`

func (a *App) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}
