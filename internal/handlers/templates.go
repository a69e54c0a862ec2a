package handlers

import "html/template"

// Shared page chrome. Every page template is parsed together with this so it
// can include {{template "style"}}.
const styleTemplate = `{{define "style"}}<style>
	:root { --primary: #0078d4; --bg: #f3f9fd; }
	body { font-family: "Segoe UI", sans-serif; background: var(--bg); margin: 0; padding: 20px; color: #333; }
	a { text-decoration: none; color: inherit; }
	button { cursor: pointer; }
	.main-container { max-width: 1100px; margin: 0 auto; }
	.toolbar { background: #fff; padding: 12px 20px; border-radius: 8px; margin-bottom: 20px; display: flex; justify-content: space-between; align-items: center; box-shadow: 0 2px 8px rgba(0,0,0,0.05); }
	.title { font-weight: bold; font-size: 16px; }
	.breadcrumbs { font-size: 14px; color: #666; }
	.breadcrumbs a:hover { color: #000; text-decoration: underline; }
	.btn-link { border: 1px solid #ddd; background: #fff; padding: 6px 10px; border-radius: 4px; font-size: 14px; color: #555; }
	.btn-link:hover { color: var(--primary); }
	.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(120px, 1fr)); gap: 12px; }
	.item-card { display: flex; flex-direction: column; align-items: center; background: #fff; border-radius: 6px; padding: 15px 5px; height: 110px; position: relative; }
	.item-card:hover { background: #e0f0ff; box-shadow: 0 4px 12px rgba(0,0,0,0.08); }
	.item-icon { font-size: 32px; margin-bottom: 8px; }
	.item-name { font-size: 13px; font-weight: 500; max-width: 100%; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
	.item-meta { font-size: 11px; color: #999; }
	.full-link { position: absolute; inset: 0; z-index: 1; }
	.item-actions { position: absolute; top: 5px; right: 5px; display: none; gap: 5px; z-index: 2; }
	.item-card:hover .item-actions { display: flex; }
	.mini-btn { width: 24px; height: 24px; background: #fff; border-radius: 4px; display: flex; align-items: center; justify-content: center; cursor: pointer; font-size: 12px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
	.table-box { background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 5px rgba(0,0,0,0.05); }
	th { text-align: left; background: #fafafa; border-bottom: 1px solid #eee; color: #666; }
	td { border-bottom: 1px solid #f5f5f5; }
	.modal { position: fixed; inset: 0; background: rgba(0,0,0,0.5); display: none; align-items: center; justify-content: center; z-index: 999; }
	.modal-content { background: #fff; width: 320px; border-radius: 8px; overflow: hidden; }
	.modal-header { background: #f9f9f9; padding: 12px 15px; border-bottom: 1px solid #eee; display: flex; justify-content: space-between; }
	.modal-body { padding: 20px; }
	.modal input, .modal select { padding: 8px; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
	.primary-btn { width: 100%; background: var(--primary); color: #fff; padding: 10px; border: none; border-radius: 4px; font-weight: bold; }
</style>{{end}}`

const reposPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>My Drive</title>
	{{template "style"}}
</head>
<body>
	<div class="main-container">
		<div class="toolbar">
			<div class="title">&#9729;&#65039; Repositories</div>
			<a href="{{.SharesHref}}" class="btn-link">&#9201; Share History</a>
		</div>
		<div class="grid">
			{{range .Repos}}
			<a href="{{.Href}}" class="item-card">
				<div class="item-icon">{{if .Private}}&#128274;{{else}}&#127760;{{end}}</div>
				<div class="item-name" title="{{.Name}}">{{.Name}}</div>
				<div class="item-meta">{{.Updated}}</div>
			</a>
			{{end}}
		</div>
	</div>
</body>
</html>`

const listingPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>{{.Repo}}</title>
	{{template "style"}}
</head>
<body>
	<div class="main-container">
		<div class="toolbar">
			<div class="breadcrumbs">
				<a href="{{.HomeHref}}">Home</a>
				{{range .Breadcrumbs}} / <a href="{{.Href}}">{{.Name}}</a>{{end}}
			</div>
			<a href="{{.SharesHref}}" class="btn-link">&#9201; Share History</a>
		</div>
		<div class="grid">
			<a href="{{.ParentHref}}" class="item-card">
				<div class="item-icon">&#10548;&#65039;</div>
				<div class="item-name">Up</div>
			</a>
			{{range .Entries}}
			<div class="item-card">
				<a href="{{.Href}}" class="full-link"></a>
				<div class="item-icon">{{if .IsDir}}&#128193;{{else}}&#128196;{{end}}</div>
				<div class="item-name" title="{{.Name}}">{{.Name}}</div>
				{{if not .IsDir}}
				<div class="item-actions">
					<a href="{{.EditHref}}" class="mini-btn" title="Edit">&#9999;&#65039;</a>
					<div class="mini-btn" title="Share" onclick="openShareModal('{{.FullPath}}', '{{.Name}}')">&#128279;</div>
				</div>
				{{end}}
			</div>
			{{end}}
		</div>
	</div>

	<div id="shareModal" class="modal">
		<div class="modal-content">
			<div class="modal-header"><b>Create Share Link</b><span style="cursor:pointer" onclick="closeShareModal()">&times;</span></div>
			<div class="modal-body">
				<div style="margin-bottom:15px; font-size:13px; color:#555;">&#128196; <span id="shareFileName"></span></div>
				<div style="display:flex; gap:5px; margin-bottom:15px;">
					<input type="number" id="val" value="1" min="1" style="flex:1">
					<select id="unit" style="flex:1">
						<option value="hour">Hours</option>
						<option value="day" selected>Days</option>
						<option value="week">Weeks</option>
						<option value="month">Months</option>
						<option value="year">Years</option>
						<option value="forever">Forever</option>
					</select>
				</div>
				<button class="primary-btn" onclick="createShare()">Generate Link</button>
				<div id="result-area" style="display:none; margin-top:10px;">
					<input type="text" id="shareUrl" readonly style="width:100%" onclick="this.select()">
				</div>
			</div>
		</div>
	</div>

	<script>
		const tokenQuery = {{.TokenQuery}};
		const modal = document.getElementById('shareModal');
		let currentSharePath = '';
		function openShareModal(path, name) {
			currentSharePath = path;
			document.getElementById('shareFileName').innerText = name;
			document.getElementById('result-area').style.display = 'none';
			modal.style.display = 'flex';
		}
		function closeShareModal() { modal.style.display = 'none'; }
		window.onclick = function(event) { if (event.target == modal) closeShareModal(); }
		async function createShare() {
			const val = parseInt(document.getElementById('val').value);
			const unit = document.getElementById('unit').value;
			const res = await fetch('/api/share/create' + tokenQuery, {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({fullPath: currentSharePath, unit: unit, value: val})
			});
			const data = await res.json();
			if (data.success) {
				document.getElementById('result-area').style.display = 'block';
				document.getElementById('shareUrl').value = data.url;
			} else {
				alert(data.message || 'Failed to create share link');
			}
		}
	</script>
</body>
</html>`

const editorPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Edit - {{.Name}}</title>
	<style>
		body { margin: 0; height: 100vh; display: flex; flex-direction: column; background: #1e1e1e; color: #d4d4d4; font-family: sans-serif; }
		.header { height: 50px; background: #252526; display: flex; align-items: center; justify-content: space-between; padding: 0 20px; border-bottom: 1px solid #333; }
		.btn { padding: 6px 12px; border: none; border-radius: 4px; cursor: pointer; margin-left: 10px; font-weight: 600; font-size: 12px; }
		.btn-back { background: #333; color: #ccc; }
		.btn-save { background: #0078d4; color: white; }
		textarea { flex: 1; background: #1e1e1e; color: #d4d4d4; border: none; padding: 20px; font-family: monospace; font-size: 14px; line-height: 1.5; resize: none; outline: none; }
	</style>
</head>
<body>
	<div class="header">
		<div style="font-weight:bold; font-size:14px;">&#128221; {{.Name}}</div>
		<div>
			<span id="msg" style="margin-right:10px; font-size:12px; color:#aaa"></span>
			<button class="btn btn-back" onclick="history.back()">Back</button>
			<button class="btn btn-save" onclick="save()">Save</button>
		</div>
	</div>
	<textarea id="code" spellcheck="false">{{.Content}}</textarea>
	<script>
		const repo = {{.Repo}};
		const path = {{.Path}};
		const sha = {{.SHA}};
		const tokenQuery = {{.TokenQuery}};
		async function save() {
			const msg = document.getElementById('msg');
			try {
				const res = await fetch('/api/file/update' + tokenQuery, {
					method: 'POST',
					headers: {'Content-Type': 'application/json'},
					body: JSON.stringify({repo: repo, path: path, sha: sha, content: document.getElementById('code').value})
				});
				const d = await res.json();
				if (d.success) {
					msg.innerText = 'Saved';
					msg.style.color = '#4caf50';
					setTimeout(() => location.reload(), 800);
				} else {
					msg.innerText = d.message;
					msg.style.color = 'red';
				}
			} catch (e) {
				msg.innerText = 'Network error';
				msg.style.color = 'red';
			}
		}
		document.getElementById('code').addEventListener('keydown', function(e) {
			if (e.key == 'Tab') {
				e.preventDefault();
				this.setRangeText('\t', this.selectionStart, this.selectionEnd, 'end');
			}
		});
	</script>
</body>
</html>`

const sharesPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Share Links</title>
	{{template "style"}}
</head>
<body>
	<div class="main-container">
		<div class="toolbar">
			<a href="{{.HomeHref}}" class="btn-link">&#11013;&#65039; Back to Files</a>
			<div class="title">Share Link Management</div>
		</div>
		<div class="table-box">
			<table width="100%" cellpadding="10" cellspacing="0">
				<thead><tr><th>File</th><th>Expires</th><th>Visits</th><th>Status</th><th>Actions</th></tr></thead>
				<tbody>
					{{if not .Shares}}
					<tr><td colspan="5" align="center" style="color:#999;">No share links yet</td></tr>
					{{end}}
					{{range .Shares}}
					<tr id="row-{{.ID}}">
						<td><a href="{{.Href}}" target="_blank" style="color:#0078d4;">{{.FileName}}</a></td>
						<td>{{.Expires}}</td>
						<td>{{.Visits}}</td>
						<td>{{if .Usable}}<span style="color:green;">valid</span>{{else}}<span style="color:red;">invalid</span>{{end}}</td>
						<td>
							<button onclick="toggle('{{.ID}}', {{.Active}})">{{if .Active}}Disable{{else}}Enable{{end}}</button>
							<button onclick="del('{{.ID}}')" style="color:red;">Delete</button>
						</td>
					</tr>
					{{end}}
				</tbody>
			</table>
		</div>
	</div>
	<script>
		const tokenQuery = {{.TokenQuery}};
		async function toggle(id, current) {
			await fetch('/api/share/toggle' + tokenQuery, {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({id: id, active: !current})
			});
			location.reload();
		}
		async function del(id) {
			if (!confirm('Delete this share link?')) return;
			await fetch('/api/share/delete' + tokenQuery, {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({id: id})
			});
			document.getElementById('row-' + id).remove();
		}
	</script>
</body>
</html>`

// mustPage parses a page template together with the shared style block.
func mustPage(name, body string) *template.Template {
	t := template.Must(template.New("style").Parse(styleTemplate))
	return template.Must(t.New(name).Parse(body))
}

var (
	reposTmpl   = mustPage("repos", reposPage)
	listingTmpl = mustPage("listing", listingPage)
	editorTmpl  = mustPage("editor", editorPage)
	sharesTmpl  = mustPage("shares", sharesPage)
)
