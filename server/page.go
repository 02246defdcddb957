package server

// The dashboard page. Server-rendered cards and tables, <img> charts backed
// by /charts/:file, and a little vanilla JS for the shapes a PNG cannot
// carry (density grid, correlation matrix, breakdown tree), fed from the
// view payload embedded below.
const pageHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Wardview — Healthcare Dashboard</title>
  <style>
    body { font-family: 'Inter', Lato, Arial, sans-serif; background: #f8fafc; color: #1e293b; margin: 0; min-height: 100vh; }
    .dashboard-title { font-size: 2.1em; text-align: center; color: #2563eb; margin: 32px 0 8px 0; font-weight: 600; }
    .summary-cards { display: flex; flex-wrap: wrap; justify-content: center; gap: 24px; margin-bottom: 32px; max-width: 1200px; margin-left: auto; margin-right: auto; }
    .card { background: #fff; border-radius: 16px; box-shadow: 0 2px 16px #e0e7ef; padding: 18px 36px 14px 36px; min-width: 200px; text-align: center; }
    .card-title { font-size: 1.05em; color: #2d3748; margin-bottom: 4px; font-weight: 600; }
    .card-content { font-size: 1.45em; font-weight: 500; }
    .viz-card { background: #fff; border-radius: 16px; box-shadow: 0 2px 16px #e0e7ef; padding: 22px 24px 18px 24px; max-width: 960px; margin: 0 auto 30px auto; }
    .viz-title { font-size: 1.25em; color: #2d3748; font-weight: 600; margin-bottom: 6px; }
    .viz-caption { font-size: 0.95em; color: #64748b; margin-bottom: 14px; }
    .viz-card img { max-width: 100%; border-radius: 8px; }
    table { border-collapse: collapse; width: 100%; font-size: 0.95em; }
    th, td { padding: 6px 10px; border-bottom: 1px solid #e2e8f0; text-align: left; }
    th { background: #f1f5f9; }
    td.num, th.num { text-align: right; }
    .grid-table td { width: 18px; height: 14px; padding: 0; border: none; }
    .matrix-table td { text-align: center; font-weight: 600; }
    details { margin-left: 18px; }
    details summary { cursor: pointer; padding: 2px 0; }
    select { margin-bottom: 10px; padding: 4px 8px; border-radius: 6px; border: 1px solid #cbd5e1; }
  </style>
</head>
<body>
{{range .Views}}
  {{if eq .Kind "cards"}}
  <div class="dashboard-title">{{.Title}}</div>
  <div class="summary-cards">
    {{range .Cards}}
    <div class="card">
      <div class="card-title">{{.Label}}</div>
      <div class="card-content">{{.Value}}</div>
    </div>
    {{end}}
  </div>
  {{else}}
  <div class="viz-card" id="view-{{.ID}}">
    <div class="viz-title">{{.Title}}</div>
    <div class="viz-caption">{{.Caption}}</div>
    {{if eq .Kind "chart"}}
      <img src="/charts/{{.ID}}.png" alt="{{.Title}}">
    {{else if eq .Kind "scatter"}}
      <select data-scatter="{{.ID}}">
        {{range .Slices}}<option value="{{.Key}}">{{.Label}}</option>{{end}}
      </select>
      <img id="scatter-{{.ID}}" src="/charts/{{.ID}}.png" alt="{{.Title}}">
    {{else if eq .Kind "table"}}
      <table>
        <tr>{{range .Table.Columns}}<th{{if eq .Align "right"}} class="num"{{end}}>{{.Label}}</th>{{end}}</tr>
        {{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
      </table>
    {{else if eq .Kind "summary"}}
      <table>
        <tr><th>Group</th><th class="num">Patients</th><th class="num">Min</th><th class="num">Q1</th><th class="num">Median</th><th class="num">Q3</th><th class="num">Max</th></tr>
        {{range .Summary}}
        <tr>
          <td>{{.Label}}</td><td class="num">{{.Count}}</td>
          <td class="num">{{printf "%.2f" .Min}}</td><td class="num">{{printf "%.2f" .Q1}}</td>
          <td class="num">{{printf "%.2f" .Median}}</td><td class="num">{{printf "%.2f" .Q3}}</td>
          <td class="num">{{printf "%.2f" .Max}}</td>
        </tr>
        {{end}}
      </table>
    {{else}}
      <div class="js-view" data-view="{{.ID}}" data-kind="{{.Kind}}"></div>
    {{end}}
  </div>
  {{end}}
{{end}}

<script>
const viewData = {{.PayloadJSON}};
const byId = {};
viewData.forEach(v => { byId[v.id] = v; });

// Scatter month selectors swap the PNG source.
document.querySelectorAll('select[data-scatter]').forEach(sel => {
  const id = sel.getAttribute('data-scatter');
  sel.addEventListener('change', () => {
    document.getElementById('scatter-' + id).src = '/charts/' + id + '.png?month=' + sel.value;
  });
  if (sel.options.length > 0) sel.dispatchEvent(new Event('change'));
});

function heatColor(t) {
  // dark blue → teal → yellow ramp
  const stops = [[68,1,84],[33,145,140],[253,231,37]];
  const x = t < 0.5 ? 0 : 1, f = t < 0.5 ? t * 2 : (t - 0.5) * 2;
  const a = stops[x], b = stops[x + 1];
  return 'rgb(' + a.map((c, i) => Math.round(c + (b[i] - c) * f)).join(',') + ')';
}

function divergeColor(v) {
  // -1 blue → 0 white → +1 red
  const t = Math.max(-1, Math.min(1, v));
  if (t < 0) {
    const f = 1 + t;
    return 'rgb(' + Math.round(255 * f) + ',' + Math.round(255 * f) + ',255)';
  }
  const f = 1 - t;
  return 'rgb(255,' + Math.round(255 * f) + ',' + Math.round(255 * f) + ')';
}

function renderGrid(el, grid) {
  let html = '<table class="grid-table">';
  for (let y = grid.cells.length - 1; y >= 0; y--) {
    html += '<tr>';
    for (const count of grid.cells[y]) {
      const t = grid.maxCell > 0 ? count / grid.maxCell : 0;
      html += '<td style="background:' + heatColor(t) + '" title="' + count + '"></td>';
    }
    html += '</tr>';
  }
  html += '</table>';
  html += '<div class="viz-caption">' + grid.xLabel + ' ' + grid.xMin.toFixed(0) + '–' + grid.xMax.toFixed(0) +
          ' (left to right), ' + grid.yLabel + ' ' + grid.yMin.toFixed(0) + '–' + grid.yMax.toFixed(0) + ' (bottom to top)</div>';
  el.innerHTML = html;
}

function renderMatrix(el, m) {
  let html = '<table class="matrix-table"><tr><th></th>';
  m.labels.forEach(l => { html += '<th>' + l + '</th>'; });
  html += '</tr>';
  m.cells.forEach((row, i) => {
    html += '<tr><th>' + m.labels[i] + '</th>';
    row.forEach(v => {
      html += '<td style="background:' + divergeColor(v) + '">' + v.toFixed(2) + '</td>';
    });
    html += '</tr>';
  });
  el.innerHTML = html + '</table>';
}

function renderBreakdown(el, node, open) {
  let html = '<details' + (open ? ' open' : '') + '><summary>' + node.label + ' — ' + node.count + '</summary>';
  (node.children || []).forEach(child => { html += renderBreakdown(null, child, false); });
  html += '</details>';
  if (el) el.innerHTML = html;
  return html;
}

document.querySelectorAll('.js-view').forEach(el => {
  const v = byId[el.getAttribute('data-view')];
  if (!v) return;
  if (v.kind === 'grid' && v.grid) renderGrid(el, v.grid);
  else if (v.kind === 'matrix' && v.matrix) renderMatrix(el, v.matrix);
  else if (v.kind === 'breakdown' && v.breakdown) renderBreakdown(el, v.breakdown, true);
});
</script>
</body>
</html>
`
