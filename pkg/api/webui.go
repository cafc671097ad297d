package api

import "net/http"

// handleUI serves the embedded admin UI
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // streaming response
	w.Write([]byte(adminUI))
}

// Embedded admin UI (simple for now)
const adminUI = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Trackday Instructions</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #f5f5f5;
            color: #333;
            line-height: 1.6;
        }
        .container { max-width: 900px; margin: 0 auto; padding: 20px; }
        header {
            background: linear-gradient(135deg, #1f2937 0%, #b91c1c 100%);
            color: white;
            padding: 30px 20px;
            text-align: center;
            margin-bottom: 30px;
            border-radius: 8px;
        }
        header h1 { font-size: 24px; margin-bottom: 5px; }
        header p { opacity: 0.9; font-size: 14px; }
        .card {
            background: white;
            border-radius: 8px;
            padding: 20px;
            margin-bottom: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .card h2 {
            font-size: 18px;
            margin-bottom: 15px;
            padding-bottom: 10px;
            border-bottom: 1px solid #eee;
        }
        .item-list { list-style: none; }
        .item {
            display: flex;
            justify-content: space-between;
            align-items: center;
            padding: 15px;
            background: #f9fafb;
            border-radius: 6px;
            margin-bottom: 10px;
        }
        .item-info h3 { font-size: 16px; margin-bottom: 3px; }
        .item-info p { font-size: 13px; color: #666; }
        .empty { text-align: center; padding: 40px; color: #666; }
        .btn {
            background: #b91c1c;
            color: white;
            border: none;
            padding: 8px 16px;
            border-radius: 6px;
            cursor: pointer;
            font-size: 13px;
            margin-left: 6px;
        }
        .btn:hover { background: #991b1b; }
        .btn-secondary { background: #e5e7eb; color: #374151; }
        .btn-secondary:hover { background: #d1d5db; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Trackday Instructions</h1>
            <p>Final instructions for track day participants</p>
        </header>

        <div class="card">
            <h2>Tracks</h2>
            <ul class="item-list" id="track-list">
                <li class="empty">Loading...</li>
            </ul>
        </div>

        <div class="card">
            <h2>Final Instructions</h2>
            <ul class="item-list" id="instruction-list">
                <li class="empty">Loading...</li>
            </ul>
        </div>
    </div>

    <script>
        async function loadTracks() {
            const res = await fetch('/api/tracks');
            const tracks = await res.json();
            const list = document.getElementById('track-list');
            if (!tracks.length) {
                list.innerHTML = '<li class="empty">No tracks yet.</li>';
                return;
            }
            list.innerHTML = tracks.map(t =>
                '<li class="item">' +
                '<div class="item-info"><h3>' + t.data.name + '</h3>' +
                '<p>' + (t.data.location || '') + ' &middot; ' + (t.data.length || '?') + ' km</p></div>' +
                '<div>' +
                '<button class="btn btn-secondary" onclick="duplicateTrack(\'' + t.id + '\')">Duplicate</button>' +
                '<button class="btn" onclick="deleteTrack(\'' + t.id + '\')">Delete</button>' +
                '</div></li>'
            ).join('');
        }

        async function loadInstructions() {
            const res = await fetch('/api/instructions');
            const items = await res.json();
            const list = document.getElementById('instruction-list');
            if (!items.length) {
                list.innerHTML = '<li class="empty">No instructions yet.</li>';
                return;
            }
            list.innerHTML = items.map(i =>
                '<li class="item">' +
                '<div class="item-info"><h3>' + i.data.instructionName + '</h3>' +
                '<p>' + (i.data.trackName || 'no track') + '</p></div>' +
                '<div>' +
                '<button class="btn btn-secondary" onclick="window.open(\'/preview/' + i.id + '\')">Preview</button>' +
                '<button class="btn btn-secondary" onclick="window.open(\'/api/instructions/' + i.id + '/export?format=svg\')">Export</button>' +
                '<button class="btn btn-secondary" onclick="duplicateInstruction(\'' + i.id + '\')">Duplicate</button>' +
                '<button class="btn" onclick="deleteInstruction(\'' + i.id + '\')">Delete</button>' +
                '</div></li>'
            ).join('');
        }

        async function duplicateTrack(id) {
            await fetch('/api/tracks/' + id + '/duplicate', { method: 'POST' });
            loadTracks();
        }
        async function deleteTrack(id) {
            if (!confirm('Delete this track?')) return;
            await fetch('/api/tracks/' + id, { method: 'DELETE' });
            loadTracks();
        }
        async function duplicateInstruction(id) {
            await fetch('/api/instructions/' + id + '/duplicate', { method: 'POST' });
            loadInstructions();
        }
        async function deleteInstruction(id) {
            if (!confirm('Delete this instruction?')) return;
            await fetch('/api/instructions/' + id, { method: 'DELETE' });
            loadInstructions();
        }

        loadTracks();
        loadInstructions();
    </script>
</body>
</html>`
